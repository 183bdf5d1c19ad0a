package primitive

var (
	templates map[CategoryEnum][]string
)

func init() {
	templates = map[CategoryEnum][]string{}

	templates[CategoryIdentity] = []string{"{{.dst}} = {{.src}}"}

	// CategoryNarrowing
	// CategoryWidening
	templates[CategoryNarrowing] = []string{"{{.dst}} = {{.dstType}}({{.src}})"}
	templates[CategoryWidening] = []string{"{{.dst}} = {{.dstType}}({{.src}})"}

	templates[CategoryBoxing] = []string{"{{.dst}} = any({{.src}})"}

	// CategoryUnboxing: numeric targets accept any numeric source sort
	templates[CategoryUnboxing] = []string{
		"switch v := {{.src}}.(type) {",
		"{{range .accepts}}case {{.}}:\n\t{{$.dst}} = {{$.dstType}}(v)\n{{end}}default:",
		`	return fmt.Errorf("{{.funcName}}: %T: %w", {{.src}}, ErrIllegalArgument)`,
		"}",
	}

	templates[CategoryReference] = []string{
		"{{.dst}}, ok = {{.src}}.({{.dstType}})",
		"if !ok {",
		`	return fmt.Errorf("{{.funcName}}: %T: %w", {{.src}}, ErrIllegalArgument)`,
		"}",
	}
}
