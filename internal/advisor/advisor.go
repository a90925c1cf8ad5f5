// Package advisor produces canned onboarding guidance for a service,
// conditioned on its language and deployment state.
package advisor

import (
	"fmt"
	"strings"

	"github.com/zellohq/devportal/internal/entity"
)

type Advice struct {
	NextSteps []string          `json:"next_steps"`
	Templates map[string]string `json:"templates"`
}

type languageGuide struct {
	steps     []string
	templates map[string]string
}

var baseSteps = []string{
	"Review service documentation and API contracts",
	"Set up monitoring and alerting for your service",
	"Configure CI/CD pipeline for automated deployments",
}

var languageGuides = map[string]languageGuide{
	"python": {
		steps: []string{
			"Set up Python virtual environment and dependencies",
			"Configure pytest for unit testing",
			"Add mypy for type checking",
			"Set up pre-commit hooks for code quality",
		},
		templates: map[string]string{
			"Python CI/CD Template": "https://github.com/example/python-cicd-template",
			"Python Dockerfile":     "https://github.com/example/python-dockerfile-template",
			"FastAPI Template":      "https://github.com/example/fastapi-template",
		},
	},
	"javascript": {
		steps: []string{
			"Set up npm scripts for testing and building",
			"Configure Jest for unit testing",
			"Add ESLint and Prettier for code quality",
			"Set up Husky for git hooks",
		},
		templates: map[string]string{
			"Node.js CI/CD Template": "https://github.com/example/nodejs-cicd-template",
			"Node.js Dockerfile":     "https://github.com/example/nodejs-dockerfile-template",
			"Express.js Template":    "https://github.com/example/express-template",
		},
	},
	"typescript": {
		steps: []string{
			"Configure TypeScript compilation settings",
			"Set up Jest with ts-jest for testing",
			"Add ESLint and Prettier with TypeScript rules",
			"Configure path mapping for clean imports",
		},
		templates: map[string]string{
			"TypeScript Node.js Template": "https://github.com/example/typescript-node-template",
			"NestJS Template":             "https://github.com/example/nestjs-template",
		},
	},
	"java": {
		steps: []string{
			"Configure Maven or Gradle build system",
			"Set up JUnit for testing",
			"Add SpotBugs for static analysis",
			"Configure Checkstyle for code formatting",
		},
		templates: map[string]string{
			"Java CI/CD Template":  "https://github.com/example/java-cicd-template",
			"Spring Boot Template": "https://github.com/example/spring-boot-template",
			"Java Dockerfile":      "https://github.com/example/java-dockerfile-template",
		},
	},
	"go": {
		steps: []string{
			"Set up Go modules and dependency management",
			"Configure go test for unit testing",
			"Add golangci-lint for code quality",
			"Set up go generate for code generation",
		},
		templates: map[string]string{
			"Go CI/CD Template":   "https://github.com/example/go-cicd-template",
			"Go Service Template": "https://github.com/example/go-service-template",
			"Go Dockerfile":       "https://github.com/example/go-dockerfile-template",
		},
	},
	"rust": {
		steps: []string{
			"Set up Cargo.toml with proper dependencies",
			"Configure cargo test for unit testing",
			"Add clippy for linting",
			"Set up rustfmt for code formatting",
		},
		templates: map[string]string{
			"Rust CI/CD Template":   "https://github.com/example/rust-cicd-template",
			"Rust Service Template": "https://github.com/example/rust-service-template",
		},
	},
}

var commonTemplates = map[string]string{
	"Service Documentation Template": "https://github.com/example/service-docs-template",
	"Monitoring Setup Guide":         "https://github.com/example/monitoring-guide",
	"Security Checklist":             "https://github.com/example/security-checklist",
	"Load Testing Guide":             "https://github.com/example/load-testing-guide",
}

var firstDeploySteps = []string{
	"Prepare your first deployment with version tagging",
	"Set up staging environment for testing",
	"Create deployment runbook and rollback procedures",
}

var postDeploySteps = []string{
	"Monitor deployment metrics and logs",
	"Set up automated rollback procedures",
	"Plan for blue-green deployments",
}

var teamRecommendations = map[string][]string{
	"identity-team":       {"Review OAuth 2.0 and security best practices", "Set up rate limiting"},
	"data-team":           {"Configure data retention policies", "Set up data quality monitoring"},
	"platform-team":       {"Review platform SLAs", "Set up cross-service monitoring"},
	"communications-team": {"Set up message delivery tracking", "Configure retry policies"},
}

// Advisor is stateless; it exists as a type so it can be injected and
// replaced in tests.
type Advisor struct{}

func NewAdvisor() *Advisor {
	return &Advisor{}
}

// Advise is a pure function of the service's language, owner and
// deployment state. Languages without a guide get a generic step and an
// empty template mapping.
func (a *Advisor) Advise(svc *entity.Service) Advice {
	steps := make([]string, 0, 16)
	templates := map[string]string{}

	steps = append(steps, baseSteps...)

	if guide, ok := languageGuides[strings.ToLower(svc.Language)]; ok {
		steps = append(steps, guide.steps...)
		for name, url := range guide.templates {
			templates[name] = url
		}
		for name, url := range commonTemplates {
			templates[name] = url
		}
	} else {
		steps = append(steps, fmt.Sprintf("Look up team conventions for %s services", svc.Language))
	}

	if svc.Deployed() {
		steps = append(steps, postDeploySteps...)
		steps = append(steps, fmt.Sprintf("Consider upgrading from %s", *svc.DeployedVersion))
	} else {
		steps = append(steps, firstDeploySteps...)
	}

	if recs, ok := teamRecommendations[svc.Owner]; ok {
		steps = append(steps, recs...)
	}

	return Advice{NextSteps: steps, Templates: templates}
}
