package primitive

import (
	"bytes"
	"strings"
	"text/template"
)

// Generate renders the Go statements a conversion from pair.From to pair.To
// stands for. dstType names the concrete destination type; it falls back to
// the builtin type of pair.To. It returns nil when the pair has no conversion.
func Generate(pair ConversionPair, srcName, dstName, dstType, funcName string) ([]string, error) {
	category := Classify(pair)
	if category == CategoryNone {
		return nil, nil
	}

	if dstType == "" {
		dstType = pair.To.GoType()
	}

	data := map[string]any{
		"src":      srcName,
		"dst":      dstName,
		"srcType":  pair.From.GoType(),
		"dstType":  dstType,
		"funcName": funcName,
		"accepts":  accepts(pair.To),
	}

	lines := templates[category]
	res := make([]string, 0, len(lines))
	for _, line := range lines {
		tmpl, err := template.New("line").Parse(line)
		if err != nil {
			return nil, err
		}

		var buf bytes.Buffer
		if err = tmpl.Execute(&buf, data); err != nil {
			return nil, err
		}

		res = append(res, strings.Split(buf.String(), "\n")...)
	}

	return res, nil
}

// accepts lists the builtin types an unboxing into to takes as input.
func accepts(to SortEnum) []string {
	if !to.IsNumber() {
		return []string{to.GoType()}
	}

	var names []string
	for _, s := range Sorts {
		if s.IsNumber() {
			names = append(names, s.GoType())
		}
	}

	return names
}
