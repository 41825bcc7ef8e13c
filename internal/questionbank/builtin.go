package questionbank

import "sains-quiz-service/internal/domain"

// Builtin returns the fallback question set used when no source yields
// questions. It covers every known subject.
func Builtin() []domain.Question {
	return []domain.Question{
		{
			Subject:      domain.SubjectPhysics,
			Prompt:       "What is the SI unit of force?",
			Options:      []string{"Joule", "Newton", "Watt", "Pascal"},
			CorrectIndex: 1,
			Explanation:  "Force is measured in newtons (N), where 1 N = 1 kg m/s².",
		},
		{
			Subject:      domain.SubjectPhysics,
			Prompt:       "Which quantity is a vector?",
			Options:      []string{"Mass", "Speed", "Velocity", "Energy"},
			CorrectIndex: 2,
			Explanation:  "Velocity has both magnitude and direction.",
		},
		{
			Subject:      domain.SubjectChemistry,
			Prompt:       "What is the chemical symbol for sodium?",
			Options:      []string{"So", "Sd", "Na", "S"},
			CorrectIndex: 2,
			Explanation:  "Sodium's symbol Na comes from its Latin name, natrium.",
		},
		{
			Subject:      domain.SubjectChemistry,
			Prompt:       "What is the pH of a neutral solution at 25°C?",
			Options:      []string{"0", "7", "10", "14"},
			CorrectIndex: 1,
			Explanation:  "Pure water at 25°C has equal H⁺ and OH⁻ concentrations, giving pH 7.",
		},
		{
			Subject:      domain.SubjectBiology,
			Prompt:       "Which organelle is the site of aerobic respiration?",
			Options:      []string{"Nucleus", "Ribosome", "Mitochondrion", "Chloroplast"},
			CorrectIndex: 2,
			Explanation:  "Mitochondria release energy from glucose in aerobic respiration.",
		},
		{
			Subject:      domain.SubjectBiology,
			Prompt:       "Which blood cells fight infection?",
			Options:      []string{"Red blood cells", "White blood cells", "Platelets", "Plasma"},
			CorrectIndex: 1,
			Explanation:  "White blood cells engulf pathogens and produce antibodies.",
		},
	}
}
