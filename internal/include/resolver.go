package include

import (
	"log/slog"
	"slices"
	"sort"

	"github.com/interopcheck/interopcheck/internal/profile"
)

// Resolver walks a profile's declared dependencies depth-first, merging
// each resolved dependency into the target profile in place. Whole-profile
// includes are processed before resource-scoped ones: scoped requirements
// may target resources that only exist after the whole-profile merges.
type Resolver struct {
	locator *Locator
}

// NewResolver returns a resolver over the given locator. A nil locator
// selects one with a fresh cache and the default repository.
func NewResolver(locator *Locator) *Resolver {
	if locator == nil {
		locator = NewLocator(nil, nil)
	}
	return &Resolver{locator: locator}
}

// Resolve merges doc's required profiles into doc and returns the profiles
// pulled in by whole-profile includes and by resource-scoped includes, in
// traversal order, for provenance reporting.
//
// chain is the ancestor path shared across the whole recursive call tree of
// one top-level resolution. It is append-only: names are never removed on
// return, so a profile name that reappears anywhere in the dependency tree
// is flagged as a cyclical import. This over-approximates true cycles and
// also suppresses diamond-shaped re-imports.
// Pass nil (or a pointer to an empty slice) at the top level.
func (r *Resolver) Resolve(doc profile.Document, dirs []string, chain *[]string, allowRemote bool) (included, resourceScoped []profile.Document) {
	if chain == nil {
		chain = &[]string{}
	}
	name := doc.Name()
	if slices.Contains(*chain, name) {
		slog.Error("suspected duplicate or cyclical profile import",
			"chain", *chain, "profile", name)
		return nil, nil
	}
	*chain = append(*chain, name)

	required := doc.RequiredProfiles()
	for _, depName := range sortedReferenceKeys(required) {
		dep := r.locator.Locate(depName, required[depName], dirs, allowRemote)
		if dep == nil {
			continue
		}

		resources := doc.EnsureResources()
		depResources := dep.Resources()
		for _, resourceType := range profile.SortedKeys(depResources) {
			depBlock, ok := depResources[resourceType].(map[string]any)
			if !ok {
				continue
			}
			block, ok := resources[resourceType].(map[string]any)
			if !ok {
				block = map[string]any{}
				resources[resourceType] = block
			}
			profile.Merge(block, depBlock)
		}

		included = append(included, dep)
		nestedIncluded, nestedScoped := r.Resolve(dep, dirs, chain, allowRemote)
		included = append(included, nestedIncluded...)
		resourceScoped = append(resourceScoped, nestedScoped...)
	}

	resources := doc.Resources()
	for _, resourceName := range profile.SortedKeys(resources) {
		resource, ok := resources[resourceName].(map[string]any)
		if !ok {
			continue
		}
		for _, object := range modifyingObjects(resource) {
			refs := profile.References(object["RequiredResourceProfile"])
			for _, depName := range sortedReferenceKeys(refs) {
				dep := r.locator.Locate(depName, refs[depName], dirs, allowRemote)
				if dep == nil {
					continue
				}
				depBlock, ok := dep.Resources()[resourceName].(map[string]any)
				if !ok {
					slog.Error("imported profile does not declare the requested resource",
						"import", depName, "resource", resourceName)
					continue
				}
				profile.Merge(object, depBlock)
				resourceScoped = append(resourceScoped, dep)
			}
		}
	}

	return included, resourceScoped
}

// modifyingObjects returns the requirement blocks of a resource that may
// carry RequiredResourceProfile entries: the resource itself, or each of
// its use cases. A resource must not mix direct RequiredResourceProfile
// with UseCases; that precondition is not enforced here.
func modifyingObjects(resource map[string]any) []map[string]any {
	useCases, ok := resource["UseCases"].([]any)
	if !ok {
		return []map[string]any{resource}
	}
	objects := make([]map[string]any, 0, len(useCases))
	for _, useCase := range useCases {
		if m, ok := useCase.(map[string]any); ok {
			objects = append(objects, m)
		}
	}
	return objects
}

func sortedReferenceKeys(refs map[string]profile.Reference) []string {
	keys := make([]string, 0, len(refs))
	for k := range refs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
