package extractor

import (
	"fmt"
	"strings"
)

func skillExtractionPrompt(text string) string {
	var sb strings.Builder

	sb.WriteString("You are a talent-intelligence analyst. Extract professional skills from the document below.\n\n")
	sb.WriteString("## DOCUMENT\n")
	sb.WriteString(text)
	sb.WriteString("\n\n## INSTRUCTIONS\n")
	sb.WriteString("Identify every skill, explicitly stated or inferable from job titles and responsibilities.\n")
	sb.WriteString("For each skill estimate a confidence in [0,1]: how certain you are the person has it.\n")
	sb.WriteString("Return a JSON array, one object per skill:\n")
	sb.WriteString("[\n")
	sb.WriteString("  {\n")
	sb.WriteString(`    "name": "<skill name>",` + "\n")
	sb.WriteString(`    "category": "<technical|tools|soft_skills|domain>",` + "\n")
	sb.WriteString(`    "confidence": <0.0-1.0>,` + "\n")
	sb.WriteString(`    "proficiency_level": "<beginner|intermediate|advanced|expert>",` + "\n")
	sb.WriteString(`    "years_experience": <integer, 0 if unknown>,` + "\n")
	sb.WriteString(`    "evidence": "<short verbatim snippet supporting the skill>",` + "\n")
	sb.WriteString(`    "is_explicit": <true if the skill is literally named in the document>` + "\n")
	sb.WriteString("  }\n")
	sb.WriteString("]\n\n")
	sb.WriteString("Return ONLY the JSON array, no additional text.\n")

	return sb.String()
}

func jobRequirementsPrompt(description string) string {
	var sb strings.Builder

	sb.WriteString("You are a recruiter. Extract the required skills from the job description below.\n\n")
	sb.WriteString("## JOB DESCRIPTION\n")
	sb.WriteString(description)
	sb.WriteString("\n\n## INSTRUCTIONS\n")
	sb.WriteString("Return a JSON array, one object per required skill:\n")
	sb.WriteString("[\n")
	sb.WriteString("  {\n")
	sb.WriteString(`    "name": "<skill name>",` + "\n")
	sb.WriteString(`    "required_level": "<beginner|intermediate|advanced|expert>",` + "\n")
	sb.WriteString(`    "importance": "<required|preferred|nice_to_have>"` + "\n")
	sb.WriteString("  }\n")
	sb.WriteString("]\n\n")
	sb.WriteString("Return ONLY the JSON array, no additional text.\n")

	return sb.String()
}

func enhancePrompt(text string, action EnhanceAction) string {
	var sb strings.Builder

	sb.WriteString("You are a career coach reviewing a resume.\n\n")
	sb.WriteString("## RESUME\n")
	sb.WriteString(text)
	sb.WriteString("\n\n## INSTRUCTIONS\n")
	switch action {
	case ActionEnhance:
		sb.WriteString("Rewrite the resume to be clearer and more impactful without inventing facts.\n")
		sb.WriteString("Return a JSON object:\n")
		sb.WriteString("{\n")
		sb.WriteString(`  "rewritten_cv": "<full rewritten resume text>",` + "\n")
		sb.WriteString(`  "suggestions": []` + "\n")
		sb.WriteString("}\n")
	default:
		sb.WriteString("List concrete improvement suggestions per section.\n")
		sb.WriteString("Return a JSON object:\n")
		sb.WriteString("{\n")
		sb.WriteString(`  "suggestions": [{"section": "<section>", "issue": "<what is weak>", "advice": "<how to fix>"}],` + "\n")
		sb.WriteString(fmt.Sprintf("  %q: \"\"\n", "rewritten_cv"))
		sb.WriteString("}\n")
	}
	sb.WriteString("\nReturn ONLY the JSON object, no additional text.\n")

	return sb.String()
}
