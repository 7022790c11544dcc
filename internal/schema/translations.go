// translations.go - Schema declarations for translation tools.
package schema

// SetTranslation declares set_translation.
func SetTranslation() Tool {
	return Tool{
		Name:        "set_translation",
		Description: "Set or replace the translation of a key for one locale",
		Params: []Param{
			Required("projectId", TypeString, projectIDDescription),
			Required("key", TypeString, "Key name"),
			Required("locale", TypeString, "Target locale tag"),
			Required("value", TypeString, "Translated text"),
		},
	}
}

// Translate declares translate. The backend accepts at most 20 keys per call.
func Translate() Tool {
	return Tool{
		Name:        "translate",
		Description: "Machine-translate keys into the project's target locales (max 20 keys per call)",
		Params: []Param{
			Required("projectId", TypeString, projectIDDescription),
			Required("keys", TypeStringArray, "Key names to translate (max 20)"),
			Optional("targetLocales", TypeStringArray, "Locales to translate into; defaults to all project locales"),
		},
	}
}
