package analyzer

import (
	"fmt"

	"github.com/BerylCAtieno/kanine-extractor/internal/models"
)

const systemPrompt = "You are a legal expert AI. You extract structured data from contracts. You output ONLY JSON."

// BuildPrompt embeds the already truncated contract text and the regex
// findings the model is asked to correct.
func BuildPrompt(text string, baseline *models.ExtractedRecord) string {
	return fmt.Sprintf(`Analyze the following contract text and correct/refine the extracted metadata.
Output ONLY valid JSON.

Context (Regex Results):
- Parties: %s
- Value: %s
- Dates: %s to %s

Contract Text:
"""
%s
"""

Instructions:
1. Extract the TOTAL CONTRACT VALUE explicitly. Look for "Valor Global", "Valor Total", or monthly value * duration.
   - Format as "R$ X.XXX,XX".
   - If it's a monthly fee, state "R$ X (Mensal)".
2. Identify the PARTIES involved (Contractor and Contracted).
3. Find SIGNATURE and EXPIRY dates.
4. Write a DETAILED SUMMARY in PORTUGUESE (PT-BR).
   - Cover: Object of the contract, Main Obligations, Validity/Term, and Value.
   - Use 2-3 sentences to be concise but informative.
5. Check for CANCELLATION notice period (e.g. "30 dias de aviso prévio") and fines.

JSON Schema:
{
    "parties": "string",
    "signatureDate": "YYYY-MM-DD",
    "expiryDate": "YYYY-MM-DD",
    "value": "string",
    "cancellationClauses": "string",
    "summary": "string"
}`,
		baseline.Parties,
		baseline.Value,
		baseline.SignatureDate,
		baseline.ExpiryDate,
		text,
	)
}
