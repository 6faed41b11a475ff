package models

// Language identifies a supported source language.
type Language string

const (
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangCPP        Language = "cpp"
)

func (l Language) String() string {
	return string(l)
}

// Languages lists every supported language in a fixed order.
func Languages() []Language {
	return []Language{LangPython, LangJavaScript, LangCPP}
}
