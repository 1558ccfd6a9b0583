package extractor

import "regexp"

var monthsPT = map[string]string{
	"janeiro":   "01",
	"fevereiro": "02",
	"março":     "03",
	"marco":     "03",
	"abril":     "04",
	"maio":      "05",
	"junho":     "06",
	"julho":     "07",
	"agosto":    "08",
	"setembro":  "09",
	"outubro":   "10",
	"novembro":  "11",
	"dezembro":  "12",
}

// spaceClass is ASCII whitespace plus U+00A0, which Go's \s leaves out.
const spaceClass = `[\s\x{00A0}]`

var (
	// 15/03/2026, 1-3-2026, 01.03.2026
	numericDatePattern = regexp.MustCompile(`(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{4})`)

	// 15 de março de 2026
	spelledDatePattern = regexp.MustCompile(`(?i)(\d{1,2})` + spaceClass + `+de` + spaceClass + `+(janeiro|fevereiro|março|marco|abril|maio|junho|julho|agosto|setembro|outubro|novembro|dezembro)` + spaceClass + `+de` + spaceClass + `+(\d{4})`)

	// R$ 5.000,00 / R$1 250,50 / R$ 300; pt-BR formatting puts a
	// non-breaking space after the symbol and between thousands.
	moneyPattern = regexp.MustCompile(`R\$` + spaceClass + `*\d{1,3}(?:[.\s\x{00A0}]\d{3})*(?:,\d{2})?`)

	partyPattern = regexp.MustCompile(`(?i)(?:CONTRATANTE|CONTRATADA|CONTRATADO|LOCADOR|LOCATÁRIO|LOCATÁRIA|PRESTADOR|TOMADOR|CEDENTE|CESSIONÁRIO|OUTORGANTE|OUTORGADO)[:\s\x{00A0}]+([^\n,;]{5,80})`)
)

var cancellationPatterns = compileKeywords(
	`rescisão`,
	`cancelamento`,
	`distrato`,
	`resilição`,
	`denúncia`,
	`multa rescisória`,
	`rescindido`,
	`término antecipado`,
	`cláusula.*rescis`,
	`penalidade`,
	`aviso prévio`,
)

func compileKeywords(keywords ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(keywords))
	for _, k := range keywords {
		patterns = append(patterns, regexp.MustCompile(`(?i)`+k))
	}
	return patterns
}
