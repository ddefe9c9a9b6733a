package paths

import "github.com/conduit-lang/edmoas/internal/edm"

// Enumerate lists the paths reachable from the entity container in at most
// one navigation step. Entity sets come first, then singletons and
// operation imports, each in declaration order:
//
//	/People, /People/{UserName}, /People/{UserName}/Friends,
//	/People/{UserName}/NS.ShareTrip, /People/NS.GetAll, /Me, /ResetDataSource
func Enumerate(model *edm.Model) []*Path {
	if model == nil || model.Container() == nil {
		return nil
	}
	container := model.Container()

	var out []*Path
	add := func(segments ...Segment) {
		out = append(out, MustNew(segments...))
	}

	for _, set := range container.EntitySets() {
		root := NewNavigationSourceSegment(set)
		et := set.EntityType()
		add(root)
		for _, op := range model.FindBoundOperations(et, true) {
			add(root, NewOperationSegment(op))
		}
		if len(et.Key()) == 0 {
			continue
		}
		key := NewKeySegment(et)
		add(root, key)
		for _, nav := range edm.AllNavigationProperties(et) {
			add(root, key, NewNavigationPropertySegment(nav))
		}
		for _, op := range model.FindBoundOperations(et, false) {
			add(root, key, NewOperationSegment(op))
		}
	}

	for _, singleton := range container.Singletons() {
		root := NewNavigationSourceSegment(singleton)
		et := singleton.EntityType()
		add(root)
		for _, nav := range edm.AllNavigationProperties(et) {
			add(root, NewNavigationPropertySegment(nav))
		}
		for _, op := range model.FindBoundOperations(et, false) {
			add(root, NewOperationSegment(op))
		}
	}

	for _, imp := range container.OperationImports() {
		add(NewOperationImportSegment(imp))
	}
	return out
}
