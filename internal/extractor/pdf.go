package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ExtractPDF flattens every text run of every page into one string: a space
// after each run and a newline after each page. A run whose bytes cannot be
// decoded through its font is kept in raw form. Any structural failure of
// the document yields "" and the error.
func ExtractPDF(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("malformed PDF structure: %v", r)
		}
	}()

	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to create PDF reader: %w", err)
	}

	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()

	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if !page.V.IsNull() {
			writePageRuns(&textBuilder, page)
		}
		textBuilder.WriteString("\n")
	}

	return norm.NFC.String(textBuilder.String()), nil
}

// rawEncoding passes code points through untouched; used before any Tf
// operator and for fonts the page does not declare.
type rawEncoding struct{}

func (rawEncoding) Decode(raw string) string { return raw }

func writePageRuns(sb *strings.Builder, page pdf.Page) {
	contents := page.V.Key("Contents")
	if contents.Kind() == pdf.Null {
		return
	}

	encoders := make(map[string]pdf.TextEncoding)
	for _, name := range page.Fonts() {
		encoders[name] = page.Font(name).Encoder()
	}

	var enc pdf.TextEncoding = rawEncoding{}
	emit := func(raw string) {
		sb.WriteString(runText(enc, raw))
		sb.WriteByte(' ')
	}

	pdf.Interpret(contents, func(stk *pdf.Stack, op string) {
		n := stk.Len()
		args := make([]pdf.Value, n)
		for i := n - 1; i >= 0; i-- {
			args[i] = stk.Pop()
		}

		switch op {
		case "Tf":
			if len(args) != 2 {
				return
			}
			if e, ok := encoders[args[0].Name()]; ok {
				enc = e
			} else {
				enc = rawEncoding{}
			}
		case "Tj", "'":
			if len(args) == 1 {
				emit(args[0].RawString())
			}
		case "\"":
			if len(args) == 3 {
				emit(args[2].RawString())
			}
		case "TJ":
			// Kerning arrays split words into pieces; they form a single run.
			if len(args) != 1 {
				return
			}
			var run strings.Builder
			for i := 0; i < args[0].Len(); i++ {
				if x := args[0].Index(i); x.Kind() == pdf.String {
					run.WriteString(x.RawString())
				}
			}
			emit(run.String())
		}
	})
}

// runText decodes one run, falling back to its raw bytes.
func runText(enc pdf.TextEncoding, raw string) string {
	text, err := decodeRun(enc, raw)
	if err != nil {
		return rawRunText(raw)
	}
	return text
}

func decodeRun(enc pdf.TextEncoding, raw string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decode run: %v", r)
		}
	}()

	text, _, err = transform.String(encoding.UTF8Validator, enc.Decode(raw))
	if err != nil {
		return "", fmt.Errorf("decode run: %w", err)
	}
	return text, nil
}

// rawRunText renders undecoded bytes as text without producing invalid UTF-8.
func rawRunText(raw string) string {
	text, err := decodeText([]byte(raw))
	if err != nil {
		return strings.ToValidUTF8(raw, "")
	}
	return text
}
