package rules

import "github.com/scansec/scansec/models"

func javascriptRules() []Rule {
	return []Rule{
		{
			ID:             "js-eval",
			Language:       models.LangJavaScript,
			Category:       "dangerous_execution",
			Severity:       models.SeverityHigh,
			Pattern:        `\beval\s*\(`,
			Description:    "Use of eval() allows execution of arbitrary code",
			Recommendation: "Avoid eval(). Use JSON.parse for data, or restructure to remove dynamic evaluation.",
		},
		{
			ID:             "js-function-constructor",
			Language:       models.LangJavaScript,
			Category:       "dangerous_execution",
			Severity:       models.SeverityHigh,
			Pattern:        `\bFunction\s*\(`,
			Description:    "The Function() constructor compiles and executes arbitrary strings",
			Recommendation: "Avoid the Function constructor; it is eval() in disguise.",
		},
		{
			ID:             "js-timer-string",
			Language:       models.LangJavaScript,
			Category:       "dangerous_execution",
			Severity:       models.SeverityMedium,
			Pattern:        `\bset(?:Timeout|Interval)\s*\(\s*["']`,
			Description:    "setTimeout/setInterval with a string argument is implicitly eval()",
			Recommendation: "Pass a function reference to setTimeout/setInterval instead of a string.",
		},
		{
			ID:             "js-innerhtml",
			Language:       models.LangJavaScript,
			Category:       "xss",
			Severity:       models.SeverityMedium,
			Pattern:        `\.innerHTML\s*=`,
			Description:    "Assignment to innerHTML can inject unsanitised markup",
			Recommendation: "Use textContent, or sanitise the markup before assignment.",
		},
		{
			ID:             "js-document-write",
			Language:       models.LangJavaScript,
			Category:       "xss",
			Severity:       models.SeverityMedium,
			Pattern:        `\bdocument\.write(?:ln)?\s*\(`,
			Description:    "document.write() with dynamic content enables DOM-based XSS",
			Recommendation: "Build DOM nodes explicitly or use a templating library with escaping.",
		},
		{
			ID:             "js-localstorage-secret",
			Language:       models.LangJavaScript,
			Category:       "localstorage_secret",
			Severity:       models.SeverityMedium,
			Pattern:        `(?i)localStorage\.setItem\s*\(\s*["'][^"']*(?:token|secret|password|key)`,
			Description:    "Secret-like value stored in localStorage, readable by any script on the page",
			Recommendation: "Keep tokens in httpOnly cookies or memory; localStorage is exposed to XSS.",
		},
		{
			ID:             "js-hardcoded-secret",
			Language:       models.LangJavaScript,
			Category:       "hardcoded_secret",
			Severity:       models.SeverityHigh,
			Pattern:        `(?i)\b(?:password|passwd|api_?key|secret|token)\s*[:=]\s*["'][^"']{4,}["']`,
			Description:    "Possible hardcoded credential assigned to a secret-like variable",
			Recommendation: "Load secrets from the server or environment configuration; never ship them in client code.",
		},
		{
			ID:             "js-child-process-exec",
			Language:       models.LangJavaScript,
			Category:       "command_injection",
			Severity:       models.SeverityHigh,
			Pattern:        "\\bexec(?:Sync)?\\s*\\(\\s*[`$A-Za-z_]",
			Description:    "child_process exec with a dynamic command string",
			Recommendation: "Use execFile/spawn with an argument array so the shell never parses user input.",
		},
	}
}
