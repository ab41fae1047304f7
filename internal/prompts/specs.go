package prompts

const urgencySpec = `Respond with a JSON object matching this exact structure:

{
  "urgency_level": "<Low|Medium|High>",
  "recommended_action": "<action>"
}

Field constraints:
- urgency_level: exactly one of Low, Medium, High.
- recommended_action: a short snake_case action such as send_email,
  escalate, or schedule_review.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing`

const routingSpec = `Respond with a JSON object matching this exact structure:

{
  "reviewer_email": "<email>",
  "approver_email": "<email>"
}

Field constraints:
- reviewer_email: roster email of the person who reviews the renewal.
- approver_email: roster email of the person who approves the renewal.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Never invent an email address that is not in the roster`

const verifySpec = `Respond with a JSON object matching this exact structure:

{
  "is_compliant": false,
  "missing_docs": ["<document>"],
  "policy_justification": "<explanation>"
}

Field constraints:
- is_compliant: true only when no required document is missing.
- missing_docs: names of required documents absent from the application.
  Empty array when compliant.
- policy_justification: one or two sentences citing the applicable rule.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing`

const draftSpec = `Respond with a JSON object matching this exact structure:

{
  "subject": "<subject line>",
  "body": "<message body>"
}

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Use \n for line breaks inside the body`

var specs = map[Stage]string{
	StageUrgency: urgencySpec,
	StageRouting: routingSpec,
	StageVerify:  verifySpec,
	StageDraft:   draftSpec,
}

// Spec returns the output specification for a workflow stage. Free-text
// stages (review, summary) have no specification and return "".
// Returns ErrInvalidStage if the stage is not recognized.
func Spec(stage Stage) (string, error) {
	if _, ok := instructions[stage]; !ok {
		return "", ErrInvalidStage
	}
	return specs[stage], nil
}
