package prompt

import "fmt"

// PitchSystem directs the model to emit only the pitch deck JSON.
func PitchSystem() string {
	return `You are a startup advisor who writes concise, compelling pitch material. Return ONLY a valid JSON object. Do not include any text outside the JSON object.`
}

// PitchUser asks for a structured pitch for the given topic.
func PitchUser(topic string) string {
	return fmt.Sprintf(`Generate a startup pitch for the domain: %s.

Return ONLY a valid JSON object with these exact keys:
- "problem": A brief description of the problem being solved
- "solution": A brief description of the proposed solution
- "market": Market size and opportunity information
- "business_model": Business model and revenue strategy

Ensure the JSON is complete and properly formatted.`, topic)
}

// Logo builds the image-generation prompt for a deck logo.
func Logo(problem, solution string) string {
	if solution == "" {
		solution = "Startup"
	}
	return fmt.Sprintf("Create a minimalist logo for a startup solving: %s. Include the text '%s'.", problem, solution)
}

// Narration builds the text read aloud for a generated pitch.
func Narration(problem, solution, market, businessModel string) string {
	return fmt.Sprintf("Problem: %s\nSolution: %s\nMarket: %s\nBusiness Model: %s",
		problem, solution, market, businessModel)
}
