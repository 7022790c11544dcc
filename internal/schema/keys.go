// keys.go - Schema declarations for translation key tools.
package schema

// ListKeys declares list_keys.
func ListKeys() Tool {
	return Tool{
		Name:        "list_keys",
		Description: "List translation keys in a project, optionally filtered by search text, locale, or missing translations",
		Params: []Param{
			Required("projectId", TypeString, projectIDDescription),
			Optional("search", TypeString, "Filter keys whose name or default value contains this text"),
			Optional("locale", TypeString, "Only include translations for this locale"),
			Optional("untranslated", TypeBoolean, "Only keys missing a translation").WithDefault(false),
			Optional("page", TypeNumber, "Page number, starting at 1"),
			Optional("pageSize", TypeNumber, "Keys per page"),
		},
	}
}

// ListUntranslated declares list_untranslated. It is list_keys with the
// untranslated filter always on.
func ListUntranslated() Tool {
	return Tool{
		Name:        "list_untranslated",
		Description: "List keys that are missing translations, optionally for a single locale",
		Params: []Param{
			Required("projectId", TypeString, projectIDDescription),
			Optional("locale", TypeString, "Only report keys missing a translation in this locale"),
		},
	}
}

// AddKey declares add_key. The key format ^[A-Za-z][A-Za-z0-9_.]*$ is
// enforced by the backend.
func AddKey() Tool {
	return Tool{
		Name:        "add_key",
		Description: "Add a translation key with its default (source language) value",
		Params: []Param{
			Required("projectId", TypeString, projectIDDescription),
			Required("key", TypeString, "Key name, e.g. 'checkout.button.pay'. Must start with a letter; letters, digits, '_' and '.' only"),
			Required("defaultValue", TypeString, "Source language text for the key"),
		},
	}
}

// DeleteKey declares delete_key.
func DeleteKey() Tool {
	return Tool{
		Name:        "delete_key",
		Description: "Delete a translation key and all of its translations",
		Params: []Param{
			Required("projectId", TypeString, projectIDDescription),
			Required("key", TypeString, "Key name to delete"),
		},
	}
}
