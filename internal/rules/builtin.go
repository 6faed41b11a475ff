package rules

import (
	"fmt"

	"github.com/scansec/scansec/models"
)

// Builtin returns the complete builtin rule set: the per-language sets plus
// the language-independent credential rules instantiated for each language.
func Builtin() []Rule {
	all := make([]Rule, 0, 32)
	all = append(all, pythonRules()...)
	all = append(all, javascriptRules()...)
	all = append(all, cppRules()...)
	for _, lang := range models.Languages() {
		all = append(all, commonRules(lang)...)
	}
	return all
}

// commonRules are credential-material detections that apply to every
// language. They are stamped out per language so each language's set stays
// self-contained.
func commonRules(lang models.Language) []Rule {
	short := map[models.Language]string{
		models.LangPython:     "py",
		models.LangJavaScript: "js",
		models.LangCPP:        "cpp",
	}[lang]

	return []Rule{
		{
			ID:             fmt.Sprintf("%s-private-key", short),
			Language:       lang,
			Category:       "private_key_material",
			Severity:       models.SeverityCritical,
			Pattern:        `-----BEGIN (?:RSA |EC |DSA |OPENSSH |PGP )?PRIVATE KEY(?: BLOCK)?-----`,
			Description:    "Private key material embedded in source code",
			Recommendation: "Remove the key from the repository, rotate it immediately, and load keys from a secrets manager or the environment.",
		},
		{
			ID:             fmt.Sprintf("%s-aws-access-key", short),
			Language:       lang,
			Category:       "hardcoded_secret",
			Severity:       models.SeverityCritical,
			Pattern:        `\bAKIA[0-9A-Z]{16}\b`,
			Description:    "AWS access key ID embedded in source code",
			Recommendation: "Revoke the key and use IAM roles or environment variables instead of hardcoded credentials.",
		},
	}
}
