package settings

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed default_ad_config.json
var defaultAdConfig []byte

// Placements are the ad-unit ids of one platform.
type Placements struct {
	InitialAd  string `json:"initial_ad"`
	RewardedAd string `json:"rewarded_ad"`
	BannerAd   string `json:"banner_ad"`
}

// Reference holds the per-platform placement ids.
type Reference struct {
	IOS     Placements `json:"ios"`
	Android Placements `json:"android"`
}

// AdConfig is the document served by GET /api/settings.
type AdConfig struct {
	IOSAd           string    `json:"ios_ad"`
	AndroidAd       string    `json:"android_ad"`
	IOSBannerAd     string    `json:"ios_banner_ad"`
	AndroidBannerAd string    `json:"android_banner_ad"`
	Ref             Reference `json:"ref"`
}

// Store persists the ad configuration.
type Store interface {
	Load(ctx context.Context) (AdConfig, bool, error)
	Save(ctx context.Context, cfg AdConfig) error
}

// Default returns the bundled configuration.
func Default() AdConfig {
	var cfg AdConfig
	if err := json.Unmarshal(defaultAdConfig, &cfg); err != nil {
		panic(fmt.Sprintf("bundled ad config is invalid: %v", err))
	}
	return cfg
}

// Validate returns the first empty field, or "" when every id is set.
func (c AdConfig) Validate() string {
	fields := []struct {
		name  string
		value string
	}{
		{"ios_ad", c.IOSAd},
		{"android_ad", c.AndroidAd},
		{"ios_banner_ad", c.IOSBannerAd},
		{"android_banner_ad", c.AndroidBannerAd},
		{"ref.ios.initial_ad", c.Ref.IOS.InitialAd},
		{"ref.ios.rewarded_ad", c.Ref.IOS.RewardedAd},
		{"ref.ios.banner_ad", c.Ref.IOS.BannerAd},
		{"ref.android.initial_ad", c.Ref.Android.InitialAd},
		{"ref.android.rewarded_ad", c.Ref.Android.RewardedAd},
		{"ref.android.banner_ad", c.Ref.Android.BannerAd},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return f.name
		}
	}
	return ""
}
