package openai

import "fmt"

// responderSystemPrompt frames the assistant for conversational replies.
// The assistant serves Ukrainian-speaking shoppers, so it is told to answer
// in the user's language.
const responderSystemPrompt = `You are a helpful assistant for a store locator service.
You help people find grocery and food stores, their addresses and working hours.
Answer briefly and politely, in the same language the user writes in.
If the user asks about anything unrelated to shopping or stores, answer as a general assistant.`

const intentResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "intent": {
      "type": "string",
      "enum": ["store_search", "conversation"]
    },
    "brand": {"type": "string"},
    "city": {"type": "string"},
    "region": {"type": "string"},
    "address": {"type": "string"}
  },
  "required": ["intent"],
  "additionalProperties": false
}`

const intentPromptTemplate = `Classify the user's message and return the result as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Set "intent" to "store_search" when the user asks where to find, buy from, or reach a store,
  or asks about a store's address or schedule. Otherwise set it to "conversation".
- For a store search, fill "brand", "city", "region" and "address" with the values the user
  actually mentioned, in the user's own language and spelling. Leave out or empty any field
  the user did not mention. Do not guess or invent values.
- "brand" is a store chain name, "city" is a settlement, "region" is an oblast or district,
  "address" is a street-level location.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "де найближча наша ряба в покровську?"
Output:
{"intent":"store_search","brand":"наша ряба","city":"покровську"}

Example (region only):
Input: "які магазини є в донецькій області?"
Output:
{"intent":"store_search","region":"донецькій області"}

Example (address mention):
Input: "шукаю атб на вулиці шевченка в краматорську"
Output:
{"intent":"store_search","brand":"атб","city":"краматорську","address":"вулиці шевченка"}

Example (small talk):
Input: "привіт, як справи?"
Output:
{"intent":"conversation"}

Example (cooking question, not a store search):
Input: "як довго смажити курку?"
Output:
{"intent":"conversation"}`

// buildIntentPrompt creates the extraction system prompt with the response
// schema embedded.
func buildIntentPrompt() string {
	return fmt.Sprintf(intentPromptTemplate, intentResponseSchema)
}
