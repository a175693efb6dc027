package openai

import (
	"fmt"
	"strings"

	"github.com/labelens/labelens/ai"
)

const analysisResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "ingredients": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "ingredient_name": {
            "type": "string",
            "pattern": "^[^A-Z()\\[\\]{}]+$"
          },
          "aliases": {
            "type": "array",
            "items": {"type": "string"}
          },
          "functions": {
            "type": "array",
            "items": {"type": "string"}
          },
          "health_rating": {
            "type": "integer",
            "minimum": 1,
            "maximum": 5
          },
          "rating_rationale": {
            "type": "string"
          },
          "potential_side_effects": {
            "type": "array",
            "items": {"type": "string"}
          },
          "source": {
            "type": "string",
            "const": "LLM"
          },
          "source_details": {
            "type": "string"
          }
        },
        "required": ["ingredient_name", "aliases", "functions", "health_rating",
                     "rating_rationale", "potential_side_effects", "source"],
        "additionalProperties": false
      }
    }
  },
  "required": ["ingredients"],
  "additionalProperties": false
}`

const analysisPromptTemplate = `You are an expert on %s product ingredients. For every ingredient term the
user supplies, return an assessment of its health implications as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Produce exactly one entry per supplied term, in the supplied order. Never skip a term.
- ingredient_name must echo the supplied term in lowercase, without brackets.
- aliases lists common alternate names for the ingredient (INCI names, trade names), lowercase.
- functions lists the roles the ingredient plays in %s products (e.g. "emollient", "preservative").
- health_rating is an integer from 1 (significant health concern) to 5 (benign).
- rating_rationale is one or two sentences justifying the rating.
- potential_side_effects lists documented adverse effects, or [] if none are known.
- source is always the string "LLM". source_details may note what the assessment is based on.
- If a term is not a recognizable ingredient, still return an entry with health_rating 3 and a
  rating_rationale saying it could not be identified.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: sodium lauryl sulfate, aqua
Output:
{
  "ingredients": [
    {"ingredient_name":"sodium lauryl sulfate","aliases":["sls"],"functions":["surfactant","cleansing"],
     "health_rating":2,"rating_rationale":"An effective cleanser but a known skin and eye irritant at higher concentrations.",
     "potential_side_effects":["skin irritation","eye irritation"],"source":"LLM","source_details":"general cosmetic safety literature"},
    {"ingredient_name":"aqua","aliases":["water"],"functions":["solvent"],
     "health_rating":5,"rating_rationale":"Water is the universal, inert base of most formulations.",
     "potential_side_effects":[],"source":"LLM","source_details":""}
  ]
}`

// buildSystemPrompt creates the system prompt for the given product category.
func buildSystemPrompt(category ai.Category) string {
	return fmt.Sprintf(analysisPromptTemplate, category, analysisResponseSchema, category)
}

// buildUserPrompt renders the batch of terms as the user message.
func buildUserPrompt(terms []string) string {
	return strings.Join(terms, ", ")
}
