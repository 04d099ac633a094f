package providers

import "strings"

// ProviderRef is a parsed "name[:options]" provider setting, e.g. "lingua:tr,en,de".
type ProviderRef struct {
	Raw     string
	Name    string
	Options []string
}

func ParseProviderRef(raw string) ProviderRef {
	raw = strings.TrimSpace(raw)
	ref := ProviderRef{Raw: raw, Name: raw}
	if name, opts, ok := strings.Cut(raw, ":"); ok {
		ref.Name = strings.TrimSpace(name)
		for _, o := range strings.Split(opts, ",") {
			if o = strings.TrimSpace(o); o != "" {
				ref.Options = append(ref.Options, o)
			}
		}
	}
	ref.Name = strings.ToLower(ref.Name)
	return ref
}
