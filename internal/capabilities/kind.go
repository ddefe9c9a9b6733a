package capabilities

import "fmt"

// CapabilitiesNamespace is the namespace of the Capabilities vocabulary
const CapabilitiesNamespace = "Org.OData.Capabilities.V1"

// Kind identifies one capability term of the Capabilities vocabulary
type Kind int

const (
	KindAnnotationValuesInQuerySupported Kind = iota
	KindBatchSupport
	KindBatchSupported
	KindChangeTracking
	KindComputeSupported
	KindConformanceLevel
	KindCountRestrictions
	KindCustomHeaders
	KindCustomQueryOptions
	KindDeepInsertSupport
	KindDeepUpdateSupport
	KindDeleteRestrictions
	KindExpandRestrictions
	KindFilterFunctions
	KindFilterRestrictions
	KindIndexableByKey
	KindInsertRestrictions
	KindKeyAsSegmentSupported
	KindNavigationRestrictions
	KindReadRestrictions
	KindSearchRestrictions
	KindSelectSupport
	KindSkipSupported
	KindSortRestrictions
	KindTopSupported
	KindUpdateRestrictions

	kindCount
)

var kindNames = [kindCount]string{
	KindAnnotationValuesInQuerySupported: "AnnotationValuesInQuerySupported",
	KindBatchSupport:                     "BatchSupport",
	KindBatchSupported:                   "BatchSupported",
	KindChangeTracking:                   "ChangeTracking",
	KindComputeSupported:                 "ComputeSupported",
	KindConformanceLevel:                 "ConformanceLevel",
	KindCountRestrictions:                "CountRestrictions",
	KindCustomHeaders:                    "CustomHeaders",
	KindCustomQueryOptions:               "CustomQueryOptions",
	KindDeepInsertSupport:                "DeepInsertSupport",
	KindDeepUpdateSupport:                "DeepUpdateSupport",
	KindDeleteRestrictions:               "DeleteRestrictions",
	KindExpandRestrictions:               "ExpandRestrictions",
	KindFilterFunctions:                  "FilterFunctions",
	KindFilterRestrictions:               "FilterRestrictions",
	KindIndexableByKey:                   "IndexableByKey",
	KindInsertRestrictions:               "InsertRestrictions",
	KindKeyAsSegmentSupported:            "KeyAsSegmentSupported",
	KindNavigationRestrictions:           "NavigationRestrictions",
	KindReadRestrictions:                 "ReadRestrictions",
	KindSearchRestrictions:               "SearchRestrictions",
	KindSelectSupport:                    "SelectSupport",
	KindSkipSupported:                    "SkipSupported",
	KindSortRestrictions:                 "SortRestrictions",
	KindTopSupported:                     "TopSupported",
	KindUpdateRestrictions:               "UpdateRestrictions",
}

// String returns the unqualified term name
func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Term returns the qualified term name used to look up annotations
func (k Kind) Term() string {
	return CapabilitiesNamespace + "." + k.String()
}

// Supported reports whether records of this kind can be built
func (k Kind) Supported() bool {
	return k.valid() && factories[k] != nil
}

func (k Kind) valid() bool {
	return k >= 0 && k < kindCount
}

// Kinds returns every known kind, supported or not
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseKind resolves an unqualified or qualified term name
func ParseKind(name string) (Kind, error) {
	for k := Kind(0); k < kindCount; k++ {
		if kindNames[k] == name || k.Term() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}
