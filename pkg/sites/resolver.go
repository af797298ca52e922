package sites

import (
	"github.com/spf13/viper"

	"github.com/thebartekbanach/picproxy/pkg/errkind"
	"github.com/thebartekbanach/picproxy/pkg/transform"
)

// Preset is a named processing configuration resolvable per site or
// globally.
type Preset struct {
	Type   string
	Width  uint
	Height uint
}

func (p Preset) TransformType() transform.Type {
	return transform.ParseType(p.Type)
}

// Resolver is a read-only lookup of the site and preset configuration
// loaded into viper by the caller.
type Resolver struct{}

func NewResolver() *Resolver {
	return &Resolver{}
}

func (r *Resolver) SitesEnabled() bool {
	return viper.GetBool("proxy.enable_sites")
}

func (r *Resolver) DynamicEnabled() bool {
	return viper.GetBool("proxy.enable_dynamic")
}

func (r *Resolver) PresetsEnabled() bool {
	return viper.GetBool("proxy.enable_presets")
}

func (r *Resolver) DefaultEnabled() bool {
	return viper.GetString("proxy.default_site") != ""
}

func (r *Resolver) DefaultSiteCode() string {
	return viper.GetString("proxy.default_site")
}

// DefaultURL resolves the base URL of the configured default site.
func (r *Resolver) DefaultURL() (string, error) {
	if !r.DefaultEnabled() {
		return "", errkind.New(errkind.Configuration, "site resolution", "default site is not enabled")
	}

	return r.SiteURL(r.DefaultSiteCode())
}

// SiteURL resolves the base URL of a site by its code.
func (r *Resolver) SiteURL(code string) (string, error) {
	url := viper.GetString("proxy.sites." + code + ".url")
	if url == "" {
		return "", errkind.Newf(errkind.NotFound, "site resolution", "site %q not found", code)
	}

	return url, nil
}

// Preset resolves a processing preset, preferring a site-specific
// definition over a globally defined one.
func (r *Resolver) Preset(code, site string) (Preset, error) {
	if site != "" {
		if key := "proxy.sites." + site + ".presets." + code; viper.IsSet(key) {
			return unmarshalPreset(key)
		}
	}

	if key := "proxy.presets." + code; viper.IsSet(key) {
		return unmarshalPreset(key)
	}

	return Preset{}, errkind.Newf(errkind.NotFound, "preset resolution", "preset %q not found", code)
}

func (r *Resolver) WidthLimit() uint {
	return viper.GetUint("proxy.limits.width")
}

func (r *Resolver) HeightLimit() uint {
	return viper.GetUint("proxy.limits.height")
}

func unmarshalPreset(key string) (Preset, error) {
	var preset Preset
	if err := viper.UnmarshalKey(key, &preset); err != nil {
		return Preset{}, errkind.Wrap(errkind.Configuration, "preset resolution", err)
	}

	return preset, nil
}
