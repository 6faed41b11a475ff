package rules

import "github.com/scansec/scansec/models"

func cppRules() []Rule {
	return []Rule{
		{
			ID:             "cpp-gets",
			Language:       models.LangCPP,
			Category:       "buffer_overflow",
			Severity:       models.SeverityCritical,
			Pattern:        `\bgets\s*\(`,
			Description:    "gets() has no bounds checking and always allows a buffer overflow",
			Recommendation: "Use fgets() with an explicit buffer size; gets() was removed from the C standard.",
		},
		{
			ID:             "cpp-strcpy",
			Language:       models.LangCPP,
			Category:       "unsafe_string_copy",
			Severity:       models.SeverityHigh,
			Pattern:        `\bstr(?:cpy|cat)\s*\(`,
			Description:    "strcpy/strcat copy without bounds checking",
			Recommendation: "Use strncpy/strncat or snprintf with explicit destination sizes.",
		},
		{
			ID:             "cpp-sprintf",
			Language:       models.LangCPP,
			Category:       "buffer_overflow",
			Severity:       models.SeverityMedium,
			Pattern:        `\bsprintf\s*\(`,
			Description:    "sprintf writes without bounds checking",
			Recommendation: "Use snprintf with an explicit buffer size.",
		},
		{
			ID:             "cpp-system-variable",
			Language:       models.LangCPP,
			Category:       "command_injection",
			Severity:       models.SeverityCritical,
			Pattern:        `\bsystem\s*\(\s*[A-Za-z_]`,
			Description:    "system() invoked with a non-literal command",
			Recommendation: "Avoid system() with variable input; use exec-family calls with fixed argument vectors.",
		},
		{
			ID:             "cpp-popen",
			Language:       models.LangCPP,
			Category:       "command_injection",
			Severity:       models.SeverityHigh,
			Pattern:        `\bpopen\s*\(`,
			Description:    "popen() passes its command string to the shell",
			Recommendation: "Use fork/exec with a fixed argument vector instead of popen().",
		},
		{
			ID:             "cpp-printf-format",
			Language:       models.LangCPP,
			Category:       "format_string",
			Severity:       models.SeverityHigh,
			Pattern:        `\bprintf\s*\(\s*[a-z_][A-Za-z0-9_]*\s*[),]`,
			Description:    "printf-family call with a variable format string",
			Recommendation: "Use a literal format string: printf(\"%s\", value).",
		},
		{
			ID:             "cpp-hardcoded-credential",
			Language:       models.LangCPP,
			Category:       "hardcoded_credential",
			Severity:       models.SeverityHigh,
			Pattern:        `(?i)\b(?:password|passwd|secret|api_?key|token)\w*\s*(?:\[\s*\])?\s*=\s*"[^"]{4,}"`,
			Description:    "Possible hardcoded credential in a string constant",
			Recommendation: "Read credentials from configuration or the environment, not from compiled-in constants.",
		},
		{
			ID:             "cpp-unchecked-malloc",
			Language:       models.LangCPP,
			Category:       "unchecked_allocation",
			Severity:       models.SeverityMedium,
			Pattern:        `=\s*(?:\([^)\n]*\)\s*)?malloc\s*\(`,
			Description:    "malloc result assigned without a visible NULL check",
			Recommendation: "Check the allocation result against NULL before use, or use a failing allocator wrapper.",
		},
	}
}
