package domain

// DefaultBankID identifies the built-in assessment catalog.
const DefaultBankID = "eq-v1"

// DefaultBank returns the built-in fifteen-item catalog, three questions per
// pillar. The aggregation weights are derived from this composition at
// runtime, so changing the counts here does not require touching the scorer.
func DefaultBank() QuestionBank {
	return QuestionBank{
		ID: DefaultBankID,
		Questions: []Question{
			{ID: 1, Text: "I can name the emotion I am feeling as it happens.", Pillar: PillarSelfAwareness},
			{ID: 2, Text: "I notice how my mood changes my behavior toward others.", Pillar: PillarSelfAwareness},
			{ID: 3, Text: "I recognize my personal strengths and limitations accurately.", Pillar: PillarSelfAwareness},
			{ID: 4, Text: "I stay composed when things do not go my way.", Pillar: PillarSelfRegulation},
			{ID: 5, Text: "I think before acting when I am upset.", Pillar: PillarSelfRegulation},
			{ID: 6, Text: "I can calm myself down quickly after a stressful moment.", Pillar: PillarSelfRegulation},
			{ID: 7, Text: "I keep working toward my goals even after setbacks.", Pillar: PillarMotivation},
			{ID: 8, Text: "I look for ways to improve rather than settling for good enough.", Pillar: PillarMotivation},
			{ID: 9, Text: "I stay optimistic about outcomes I can influence.", Pillar: PillarMotivation},
			{ID: 10, Text: "I can sense how someone feels before they tell me.", Pillar: PillarEmpathy},
			{ID: 11, Text: "I consider other people's perspectives when making decisions.", Pillar: PillarEmpathy},
			{ID: 12, Text: "I listen without planning my reply while the other person talks.", Pillar: PillarEmpathy},
			{ID: 13, Text: "I find it easy to start conversations with new people.", Pillar: PillarSocialSkills},
			{ID: 14, Text: "I can resolve disagreements without damaging relationships.", Pillar: PillarSocialSkills},
			{ID: 15, Text: "People come to me for help working through conflicts.", Pillar: PillarSocialSkills},
		},
	}
}
