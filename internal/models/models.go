package models

// All returns every persisted model in dependency order, for migrations and test setup.
func All() []any {
	return []any{
		&User{},
		&Profile{},
		&Experience{},
		&Modality{},
		&Category{},
		&Project{},
		&Application{},
		&ContactMessage{},
	}
}
