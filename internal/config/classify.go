package config

// DefaultClassify implements the default classification rules from
// spec.md §6, applied unless a ConfigurationProvider overrides them. It
// is exported standalone (not just embedded in a concrete Provider) so a
// wrapping Provider can fall back to it for windows its own rules don't
// cover.
func DefaultClassify(attrs WindowAttributes) *bool {
	if attrs.OverrideRedirect {
		return nil
	}
	if attrs.TransientFor != nil {
		return boolPtr(true)
	}

	hasType := len(attrs.NetWMType) > 0
	if !hasType {
		if hasState(attrs.NetWMState, "_NET_WM_STATE_ABOVE") {
			return boolPtr(true)
		}
		if attrs.InstanceName == "" {
			return boolPtr(true)
		}
		// Empty type, named instance, no special state: fall through to
		// tiled as a reasonable default for a plain application window.
		return boolPtr(false)
	}

	switch {
	case hasType2(attrs.NetWMType, "_NET_WM_WINDOW_TYPE_NORMAL"):
		return boolPtr(false)
	case hasType2(attrs.NetWMType, "_NET_WM_WINDOW_TYPE_DIALOG", "_NET_WM_WINDOW_TYPE_SPLASH"):
		return boolPtr(true)
	default:
		return nil
	}
}

func hasState(states []string, want string) bool {
	for _, s := range states {
		if s == want {
			return true
		}
	}
	return false
}

func hasType2(types []string, wants ...string) bool {
	for _, t := range types {
		for _, w := range wants {
			if t == w {
				return true
			}
		}
	}
	return false
}

func boolPtr(v bool) *bool { return &v }
