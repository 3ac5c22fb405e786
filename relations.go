package gopaginate

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Relation is a node of the relation tree loaded with every page. A node
// without Nested relations is a leaf.
type Relation struct {
	// Name is the association field name on the parent model, e.g. "Author".
	Name   string
	Nested []Relation
}

// RelationPaths builds a relation tree from dotted association paths.
//
// Example: RelationPaths("Author.Company", "Tags") returns
//
//	[{Author [{Company []}]} {Tags []}]
func RelationPaths(paths ...string) []Relation {
	var ret []Relation

	for _, path := range paths {
		if path == "" {
			continue
		}

		ret = insertRelationPath(ret, strings.Split(path, "."))
	}

	return ret
}

func insertRelationPath(relations []Relation, names []string) []Relation {
	if len(names) == 0 || names[0] == "" {
		return relations
	}

	for i := range relations {
		if relations[i].Name == names[0] {
			relations[i].Nested = insertRelationPath(relations[i].Nested, names[1:])
			return relations
		}
	}

	return append(relations, Relation{
		Name:   names[0],
		Nested: insertRelationPath(nil, names[1:]),
	})
}

// walkRelations visits every node of the tree depth first with its dotted
// path from the root.
func walkRelations(relations []Relation, prefix string, visit func(path string)) {
	for _, relation := range relations {
		path := relation.Name
		if prefix != "" {
			path = prefix + "." + relation.Name
		}

		visit(path)
		walkRelations(relation.Nested, path, visit)
	}
}

// joinRelations LEFT JOINs every node of the tree.
func joinRelations(db *gorm.DB, relations []Relation) *gorm.DB {
	walkRelations(relations, "", func(path string) {
		db = db.Joins(path)
	})

	return db
}

// preloadRelations loads every node of the tree with separate queries.
func preloadRelations(db *gorm.DB, relations []Relation) *gorm.DB {
	walkRelations(relations, "", func(path string) {
		db = db.Preload(path)
	})

	return db
}

func preloadAssociations(db *gorm.DB) *gorm.DB {
	return db.Preload(clause.Associations)
}
