package iconset

// Icon is one entry of the app icon set.
type Icon struct {
	Filename string
	Idiom    string // iphone, ipad or ios-marketing
	Points   string // edge length in points, may be fractional
	Scale    int
	Pixels   int
}

// Icons lists every image an iOS app icon set needs.
var Icons = []Icon{
	{"icon-20@2x.png", "iphone", "20", 2, 40},
	{"icon-20@3x.png", "iphone", "20", 3, 60},
	{"icon-29@2x.png", "iphone", "29", 2, 58},
	{"icon-29@3x.png", "iphone", "29", 3, 87},
	{"icon-40@2x.png", "iphone", "40", 2, 80},
	{"icon-40@3x.png", "iphone", "40", 3, 120},
	{"icon-60@2x.png", "iphone", "60", 2, 120},
	{"icon-60@3x.png", "iphone", "60", 3, 180},

	{"icon-20-ipad@1x.png", "ipad", "20", 1, 20},
	{"icon-20-ipad@2x.png", "ipad", "20", 2, 40},
	{"icon-29-ipad@1x.png", "ipad", "29", 1, 29},
	{"icon-29-ipad@2x.png", "ipad", "29", 2, 58},
	{"icon-40-ipad@1x.png", "ipad", "40", 1, 40},
	{"icon-40-ipad@2x.png", "ipad", "40", 2, 80},
	{"icon-76-ipad@2x.png", "ipad", "76", 2, 152},
	{"icon-83.5-ipad@2x.png", "ipad", "83.5", 2, 167},

	{"AppIcon-1024.png", "ios-marketing", "1024", 1, 1024},
}

// MinSourcePixels is the smallest source edge that never needs upscaling.
const MinSourcePixels = 1024

// DefaultDir is where Xcode expects the icon set inside an app target.
const DefaultDir = "Assets.xcassets/AppIcon.appiconset"
