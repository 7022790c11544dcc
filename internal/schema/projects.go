// projects.go - Schema declarations for project-level tools.
package schema

const projectIDDescription = "Project ID"

// ListProjects declares list_projects.
func ListProjects() Tool {
	return Tool{
		Name:        "list_projects",
		Description: "List all translation projects you have access to",
	}
}

// GetProject declares get_project.
func GetProject() Tool {
	return Tool{
		Name:        "get_project",
		Description: "Get a project's details: locales, key count, and translation progress",
		Params: []Param{
			Required("projectId", TypeString, projectIDDescription),
		},
	}
}

// AddLocale declares add_locale.
func AddLocale() Tool {
	return Tool{
		Name:        "add_locale",
		Description: "Add a target locale to a project",
		Params: []Param{
			Required("projectId", TypeString, projectIDDescription),
			Required("locale", TypeString, "BCP-47 locale tag to add (e.g. 'fr', 'pt-BR')"),
		},
	}
}
