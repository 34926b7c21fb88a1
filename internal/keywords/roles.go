package keywords

import (
	"strings"
)

// RoleKeywords maps a target role name to the terms a reviewer expects to see for it.
type RoleKeywords struct {
	Role     string   `mapstructure:"role" json:"role"`
	Keywords []string `mapstructure:"keywords" json:"keywords"`
}

// DefaultRoles is the built-in role table. It is consulted after any roles supplied by configuration.
var DefaultRoles = []RoleKeywords{
	{
		Role: "software engineer",
		Keywords: []string{
			"python", "java", "javascript", "typescript", "api", "backend", "frontend", "sql", "git",
			"docker", "testing", "ci/cd", "aws", "gcp", "linux", "react", "node", "flask", "fastapi",
			"django", "kubernetes",
		},
	},
	{
		Role: "data analyst",
		Keywords: []string{
			"sql", "excel", "tableau", "power bi", "python", "pandas", "statistics", "dashboards", "etl",
			"reporting", "forecasting", "a/b testing",
		},
	},
	{
		Role: "product manager",
		Keywords: []string{
			"roadmap", "requirements", "stakeholders", "metrics", "go-to-market", "user research",
			"prioritization", "launch", "kpi", "strategy",
		},
	},
	{
		Role: "ml engineer",
		Keywords: []string{
			"pytorch", "tensorflow", "training", "inference", "feature engineering", "model deployment",
			"mlops", "vector", "embeddings", "evaluation",
		},
	},
}

// ReferenceText builds the text the resume is compared against. A non-blank job description
// wins; otherwise the keywords of the first role whose name occurs in the requested role are
// used, and an unknown role is compared as-is.
func ReferenceText(role, jobDescription string, roles []RoleKeywords) string {
	if strings.TrimSpace(jobDescription) != "" {
		return jobDescription
	}

	wanted := strings.ToLower(strings.TrimSpace(role))
	if wanted == "" {
		return role
	}

	for _, entry := range roles {
		key := strings.ToLower(strings.TrimSpace(entry.Role))
		if key == "" {
			continue
		}
		if strings.Contains(wanted, key) {
			return strings.Join(entry.Keywords, " ")
		}
	}

	return role
}
