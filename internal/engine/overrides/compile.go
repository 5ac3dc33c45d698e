package overrides

import "go.trai.ch/alloy/internal/core/domain"

// CompileLayer turns a declarative manifest layer into a registry layer.
// Each patch becomes a transform that extends the super recipe: AddInputs
// appended, non-nil phase lists replaced, non-empty artifact fields
// replaced.
func CompileLayer(patchLayer domain.OverridePatchLayer) Layer {
	rules := make(map[string]Rule, len(patchLayer.Packages))
	for name, patch := range patchLayer.Packages {
		rules[name] = Rule{Apply: applyPatch(patch)}
	}
	return Layer{Name: patchLayer.Name, Rules: rules}
}

func applyPatch(patch domain.RecipePatch) Transform {
	return func(super domain.Recipe) domain.Recipe {
		next := super

		next.Inputs = append(next.Inputs, domain.InternStrings(patch.AddInputs)...)

		if patch.Setup != nil {
			next.Phases.Setup = patch.Setup
		}
		if patch.Build != nil {
			next.Phases.Build = patch.Build
		}
		if patch.Install != nil {
			next.Phases.Install = patch.Install
		}

		if patch.ArtifactKind != "" {
			next.Artifact.Kind = domain.ArtifactKind(patch.ArtifactKind)
		}
		if patch.ArtifactPath != "" {
			next.Artifact.Path = patch.ArtifactPath
		}

		return next
	}
}
