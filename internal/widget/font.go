package widget

import (
	"fmt"
	"strconv"
	"strings"
)

// DeviceClass selects size tables for the screen the widget is shown on
type DeviceClass string

const (
	DevicePhone  DeviceClass = "phone"
	DeviceTablet DeviceClass = "tablet"
)

const (
	TitleFontPhone  = 17
	TitleFontTablet = 20
	MetadataFont    = 10
	minCountFont    = 20
)

// ParseDevice converts "phone" or "tablet" into a DeviceClass
func ParseDevice(name string) (DeviceClass, error) {
	device := DeviceClass(strings.ToLower(strings.TrimSpace(name)))
	switch device {
	case DevicePhone, DeviceTablet:
		return device, nil
	default:
		return "", fmt.Errorf("invalid device: %s (must be 'phone' or 'tablet')", name)
	}
}

// TitleFontSize returns the title row font size for device
func TitleFontSize(device DeviceClass) int {
	if device == DevicePhone {
		return TitleFontPhone
	}
	return TitleFontTablet
}

// FontRule computes the count row font size
type FontRule struct {
	Name string
	Size func(count int, device DeviceClass) int
}

// FontTwoTier shrinks the count once it reaches four digits
var FontTwoTier = FontRule{
	Name: "two-tier",
	Size: func(count int, device DeviceClass) int {
		if count >= 1000 {
			if device == DevicePhone {
				return 45
			}
			return 55
		}
		if device == DevicePhone {
			return 55
		}
		return 70
	},
}

// FontDigitDecay shrinks the count by a fixed step for every digit beyond three
var FontDigitDecay = FontRule{
	Name: "digit-decay",
	Size: func(count int, device DeviceClass) int {
		base, step := 70, 8
		if device == DevicePhone {
			base, step = 55, 5
		}

		if count < 0 {
			count = 0
		}
		extra := len(strconv.Itoa(count)) - 3
		if extra < 0 {
			extra = 0
		}

		size := base - extra*step
		if size < minCountFont {
			return minCountFont
		}
		return size
	},
}

var fontRules = map[string]FontRule{
	FontTwoTier.Name:    FontTwoTier,
	FontDigitDecay.Name: FontDigitDecay,
}

// FontRuleByName returns the font rule registered under name
func FontRuleByName(name string) (FontRule, error) {
	rule, ok := fontRules[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return FontRule{}, fmt.Errorf("unknown font rule: %s (must be one of %s)", name, strings.Join(keys(fontRules), ", "))
	}
	return rule, nil
}
