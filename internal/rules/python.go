package rules

import "github.com/scansec/scansec/models"

func pythonRules() []Rule {
	return []Rule{
		{
			ID:             "py-eval",
			Language:       models.LangPython,
			Category:       "dangerous_execution",
			Severity:       models.SeverityHigh,
			Pattern:        `\beval\s*\(`,
			Description:    "Use of eval() allows execution of arbitrary expressions",
			Recommendation: "Avoid eval(). Use ast.literal_eval() for literal parsing, or restructure to remove dynamic evaluation.",
		},
		{
			ID:             "py-exec",
			Language:       models.LangPython,
			Category:       "dangerous_execution",
			Severity:       models.SeverityHigh,
			Pattern:        `\bexec\s*\(`,
			Description:    "Use of exec() allows execution of arbitrary code",
			Recommendation: "Avoid exec(). Dynamic code execution on untrusted input leads to remote code execution.",
		},
		{
			ID:             "py-pickle-load",
			Language:       models.LangPython,
			Category:       "unsafe_deserialization",
			Severity:       models.SeverityHigh,
			Pattern:        `\bpickle\.loads?\s*\(`,
			Description:    "pickle deserialization of untrusted data can execute arbitrary code",
			Recommendation: "Never unpickle untrusted input. Prefer json or another data-only format.",
		},
		{
			ID:             "py-yaml-load",
			Language:       models.LangPython,
			Category:       "unsafe_deserialization",
			Severity:       models.SeverityMedium,
			Pattern:        `\byaml\.load\s*\(`,
			Description:    "yaml.load() without an explicit safe loader can construct arbitrary objects",
			Recommendation: "Use yaml.safe_load(), or pass Loader=yaml.SafeLoader explicitly.",
		},
		{
			ID:             "py-hardcoded-secret",
			Language:       models.LangPython,
			Category:       "hardcoded_secret",
			Severity:       models.SeverityHigh,
			Pattern:        `(?i)\b(?:password|passwd|api_key|apikey|secret|token)\s*=\s*["'][^"']{4,}["']`,
			Description:    "Possible hardcoded credential assigned to a secret-like variable",
			Recommendation: "Load secrets from environment variables or a secrets manager; never commit them to source control.",
		},
		{
			ID:             "py-multiline-secret",
			Language:       models.LangPython,
			Category:       "hardcoded_secret",
			Severity:       models.SeverityHigh,
			Pattern:        `(?i)\b(?:password|api_key|secret|token)\s*=\s*(?:"""|''')[\s\S]{0,400}?(?:"""|''')`,
			MultiLine:      true,
			Description:    "Possible hardcoded credential in a triple-quoted string literal",
			Recommendation: "Load secrets from environment variables or a secrets manager; never commit them to source control.",
		},
		{
			ID:             "py-sql-injection",
			Language:       models.LangPython,
			Category:       "sql_injection",
			Severity:       models.SeverityCritical,
			Pattern:        `(?i)\.execute(?:many)?\s*\(\s*(?:f["']|["'][^"'\n]*["']\s*[%+])`,
			Description:    "SQL query built from string formatting or concatenation",
			Recommendation: "Use parameterized queries (placeholders) instead of building SQL from strings.",
		},
		{
			ID:             "py-subprocess-shell",
			Language:       models.LangPython,
			Category:       "command_injection",
			Severity:       models.SeverityHigh,
			Pattern:        `\bsubprocess\.(?:call|run|Popen|check_output)\s*\([^)\n]*shell\s*=\s*True`,
			Description:    "subprocess invoked with shell=True, exposing the command line to injection",
			Recommendation: "Pass the command as an argument list with shell=False.",
		},
		{
			ID:             "py-os-system",
			Language:       models.LangPython,
			Category:       "command_injection",
			Severity:       models.SeverityHigh,
			Pattern:        `\bos\.system\s*\(`,
			Description:    "os.system() passes its argument to the shell",
			Recommendation: "Use subprocess with an argument list instead of os.system().",
		},
		{
			ID:             "py-weak-hash",
			Language:       models.LangPython,
			Category:       "weak_cryptography",
			Severity:       models.SeverityMedium,
			Pattern:        `\bhashlib\.(?:md5|sha1)\s*\(`,
			Description:    "Use of a broken hash function (MD5/SHA-1)",
			Recommendation: "Use SHA-256 or stronger; for passwords use a dedicated KDF such as bcrypt or argon2.",
		},
	}
}
