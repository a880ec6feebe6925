// Package params parses key=value option lists and .env files.
//
// ParseKeyValuePairs backs repeatable CLI flags such as --csv-option, turning
// ["delimiter=;", "null=N/A"] into a map. ParseEnvFile reads .env-style
// content (comments, blank lines, optional quoting) without variable
// expansion; it exists for callers that need to inspect an env file without
// mutating the process environment the way godotenv does.
//
// All functions are safe for concurrent use.
package params
