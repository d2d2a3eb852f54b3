package config

import "github.com/moasq/pbxgen/internal/pbxproj"

// Default returns the configuration of the Cheq app, the layout pbxgen was
// first written for. `pbxgen init` writes it out as a starting point.
func Default() *Config {
	return &Config{
		Name:             "Cheq",
		BundleID:         "com.zeinanosier.cheq",
		Team:             "HFQ8UWKULA",
		DeploymentTarget: "17.0",
		Exclude:          []string{"Package.swift"},
		Groups: []pbxproj.Mapping{
			{Prefix: "Models/", Name: "Models"},
			{Prefix: "Services/", Name: "Services"},
			{Prefix: "ViewModels/", Name: "ViewModels"},
			{Prefix: "Views/", Name: "Views"},
			{Prefix: "Views/AssignItems/", Name: "AssignItems"},
			{Prefix: "Views/Auth/", Name: "Auth"},
			{Prefix: "Views/ConfirmReceipt/", Name: "ConfirmReceipt"},
			{Prefix: "Views/Home/", Name: "Home"},
			{Prefix: "Views/Onboarding/", Name: "Onboarding"},
			{Prefix: "Views/Scan/", Name: "Scan"},
			{Prefix: "Views/Settings/", Name: "Settings"},
			{Prefix: "Views/Splash/", Name: "Splash"},
			{Prefix: "Views/Summary/", Name: "Summary"},
			{Prefix: "Utilities/", Name: "Utilities"},
			{Prefix: "Utilities/DesignSystem/", Name: "DesignSystem"},
			{Prefix: "Utilities/Extensions/", Name: "Extensions"},
		},
		Resources: []pbxproj.Resource{
			{Path: "Assets.xcassets"},
			{Path: "Cheq.xcdatamodeld"},
			{Path: "Info.plist"},
			{Path: "Cheq.entitlements"},
		},
		Packages: []pbxproj.Package{{
			Name:       "GoogleSignIn-iOS",
			URL:        "https://github.com/google/GoogleSignIn-iOS",
			MinVersion: "7.0.0",
			Products:   []string{"GoogleSignIn"},
		}},
		BuildSettings: BuildSettings{Base: defaultBaseSettings()},
	}
}

func defaultBaseSettings() map[string]any {
	return map[string]any{
		"ALWAYS_SEARCH_USER_PATHS":                               "NO",
		"ASSETCATALOG_COMPILER_APPICON_NAME":                     "AppIcon",
		"ASSETCATALOG_COMPILER_GLOBAL_ACCENT_COLOR_NAME":         "AccentColor",
		"ASSETCATALOG_COMPILER_INCLUDE_ALL_APPICON_ASSETS":       "NO",
		"CODE_SIGN_ENTITLEMENTS":                                 "Cheq.entitlements",
		"CODE_SIGN_STYLE":                                        "Automatic",
		"CURRENT_PROJECT_VERSION":                                "1",
		"DEVELOPMENT_ASSET_PATHS":                                "",
		"ENABLE_PREVIEWS":                                        "YES",
		"EXCLUDED_ARCHS[sdk=iphonesimulator*]":                   "x86_64",
		"GENERATE_INFOPLIST_FILE":                                "NO",
		"INFOPLIST_FILE":                                         "Info.plist",
		"INFOPLIST_KEY_CFBundleDisplayName":                      "Cheq",
		"INFOPLIST_KEY_LSApplicationCategoryType":                "public.app-category.finance",
		"INFOPLIST_KEY_UIApplicationSceneManifest_Generation":    "YES",
		"INFOPLIST_KEY_UIApplicationSupportsIndirectInputEvents": "YES",
		"INFOPLIST_KEY_UILaunchScreen_Generation":                "YES",
		"INFOPLIST_KEY_UISupportedInterfaceOrientations_iPad":    "UIInterfaceOrientationPortrait UIInterfaceOrientationPortraitUpsideDown UIInterfaceOrientationLandscapeLeft UIInterfaceOrientationLandscapeRight",
		"INFOPLIST_KEY_UISupportedInterfaceOrientations_iPhone":  "UIInterfaceOrientationPortrait UIInterfaceOrientationLandscapeLeft UIInterfaceOrientationLandscapeRight",
		"LD_RUNPATH_SEARCH_PATHS":                                []any{"$(inherited)", "@executable_path/Frameworks"},
		"MARKETING_VERSION":                                      "1.0",
		"PRODUCT_NAME":                                           "$(TARGET_NAME)",
		"SDKROOT":                                                "iphoneos",
		"SUPPORTED_PLATFORMS":                                    "iphoneos iphonesimulator",
		"SUPPORTS_MACCATALYST":                                   "NO",
		"SUPPORTS_MAC_DESIGNED_FOR_IPHONE_IPAD":                  "NO",
		"SUPPORTS_XR_DESIGNED_FOR_IPHONE_IPAD":                   "NO",
		"SWIFT_EMIT_LOC_STRINGS":                                 "YES",
		"SWIFT_VERSION":                                          "5.0",
		"TARGETED_DEVICE_FAMILY":                                 "1",
		"USE_HEADERMAP":                                          "separate",
	}
}
