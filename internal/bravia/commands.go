// Copyright 2025 Arion Yau
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bravia

import "sort"

// commandTable maps symbolic command names to IRCC codes. Several names share
// a code; DOT and Dot are both kept because button strings use the former and
// Decompose emits the latter.
var commandTable = map[string]BraviaRemoteCode{
	// System and navigation keys
	"Num1":            "AAAAAQAAAAEAAAAAAw==",
	"Num2":            "AAAAAQAAAAEAAAABAw==",
	"Num3":            "AAAAAQAAAAEAAAACAw==",
	"Num4":            "AAAAAQAAAAEAAAADAw==",
	"Num5":            "AAAAAQAAAAEAAAAEAw==",
	"Num6":            "AAAAAQAAAAEAAAAFAw==",
	"Num7":            "AAAAAQAAAAEAAAAGAw==",
	"Num8":            "AAAAAQAAAAEAAAAHAw==",
	"Num9":            "AAAAAQAAAAEAAAAIAw==",
	"Num0":            "AAAAAQAAAAEAAAAJAw==",
	"Num11":           "AAAAAQAAAAEAAAAKAw==",
	"Num12":           "AAAAAQAAAAEAAAALAw==",
	"Enter":           "AAAAAQAAAAEAAAALAw==",
	"GGuide":          "AAAAAQAAAAEAAAAOAw==",
	"ChannelUp":       "AAAAAQAAAAEAAAAQAw==",
	"ChannelDown":     "AAAAAQAAAAEAAAARAw==",
	"VolumeUp":        "AAAAAQAAAAEAAAASAw==",
	"VolumeDown":      "AAAAAQAAAAEAAAATAw==",
	"Mute":            "AAAAAQAAAAEAAAAUAw==",
	"TvPower":         "AAAAAQAAAAEAAAAVAw==",
	"Audio":           "AAAAAQAAAAEAAAAXAw==",
	"MediaAudioTrack": "AAAAAQAAAAEAAAAXAw==",
	"Tv":              "AAAAAQAAAAEAAAAkAw==",
	"Input":           "AAAAAQAAAAEAAAAlAw==",
	"TvInput":         "AAAAAQAAAAEAAAAlAw==",
	"TvAntennaCable":  "AAAAAQAAAAEAAAAqAw==",
	"WakeUp":          "AAAAAQAAAAEAAAAuAw==",
	"PowerOff":        "AAAAAQAAAAEAAAAvAw==",
	"Sleep":           "AAAAAQAAAAEAAAAvAw==",
	"Right":           "AAAAAQAAAAEAAAAzAw==",
	"Left":            "AAAAAQAAAAEAAAA0Aw==",
	"SleepTimer":      "AAAAAQAAAAEAAAA2Aw==",
	"Analog2":         "AAAAAQAAAAEAAAA4Aw==",
	"TvAnalog":        "AAAAAQAAAAEAAAA4Aw==",
	"Display":         "AAAAAQAAAAEAAAA6Aw==",
	"Jump":            "AAAAAQAAAAEAAAA7Aw==",
	"PicOff":          "AAAAAQAAAAEAAAA+Aw==",
	"PictureOff":      "AAAAAQAAAAEAAAA+Aw==",
	"Teletext":        "AAAAAQAAAAEAAAA/Aw==",
	"Video1":          "AAAAAQAAAAEAAABAAw==",
	"Video2":          "AAAAAQAAAAEAAABBAw==",
	"AnalogRgb1":      "AAAAAQAAAAEAAABDAw==",
	"Home":            "AAAAAQAAAAEAAABgAw==",
	"Exit":            "AAAAAQAAAAEAAABjAw==",
	"PictureMode":     "AAAAAQAAAAEAAABkAw==",
	"Confirm":         "AAAAAQAAAAEAAABlAw==",
	"Up":              "AAAAAQAAAAEAAAB0Aw==",
	"Down":            "AAAAAQAAAAEAAAB1Aw==",

	// Picture and guide keys
	"ClosedCaption": "AAAAAgAAAKQAAAAQAw==",
	"Component1":    "AAAAAgAAAKQAAAA2Aw==",
	"Component2":    "AAAAAgAAAKQAAAA3Aw==",
	"Wide":          "AAAAAgAAAKQAAAA9Aw==",
	"EPG":           "AAAAAgAAAKQAAABbAw==",
	"PAP":           "AAAAAgAAAKQAAAB3Aw==",

	// Media, colour and cursor keys
	"TenKey":                         "AAAAAgAAAJcAAAAMAw==",
	"BSCS":                           "AAAAAgAAAJcAAAAQAw==",
	"Ddata":                          "AAAAAgAAAJcAAAAVAw==",
	"Stop":                           "AAAAAgAAAJcAAAAYAw==",
	"Pause":                          "AAAAAgAAAJcAAAAZAw==",
	"Play":                           "AAAAAgAAAJcAAAAaAw==",
	"Rewind":                         "AAAAAgAAAJcAAAAbAw==",
	"Forward":                        "AAAAAgAAAJcAAAAcAw==",
	"DOT":                            "AAAAAgAAAJcAAAAdAw==",
	"Dot":                            "AAAAAgAAAJcAAAAdAw==",
	"Rec":                            "AAAAAgAAAJcAAAAgAw==",
	"Return":                         "AAAAAgAAAJcAAAAjAw==",
	"Blue":                           "AAAAAgAAAJcAAAAkAw==",
	"Red":                            "AAAAAgAAAJcAAAAlAw==",
	"Green":                          "AAAAAgAAAJcAAAAmAw==",
	"Yellow":                         "AAAAAgAAAJcAAAAnAw==",
	"SubTitle":                       "AAAAAgAAAJcAAAAoAw==",
	"CS":                             "AAAAAgAAAJcAAAArAw==",
	"BS":                             "AAAAAgAAAJcAAAAsAw==",
	"Digital":                        "AAAAAgAAAJcAAAAyAw==",
	"Options":                        "AAAAAgAAAJcAAAA2Aw==",
	"Media":                          "AAAAAgAAAJcAAAA4Aw==",
	"Prev":                           "AAAAAgAAAJcAAAA8Aw==",
	"Next":                           "AAAAAgAAAJcAAAA9Aw==",
	"DpadCenter":                     "AAAAAgAAAJcAAABKAw==",
	"CursorUp":                       "AAAAAgAAAJcAAABPAw==",
	"CursorDown":                     "AAAAAgAAAJcAAABQAw==",
	"CursorLeft":                     "AAAAAgAAAJcAAABNAw==",
	"CursorRight":                    "AAAAAgAAAJcAAABOAw==",
	"ShopRemoteControlForcedDynamic": "AAAAAgAAAJcAAABqAw==",
	"FlashPlus":                      "AAAAAgAAAJcAAAB4Aw==",
	"FlashMinus":                     "AAAAAgAAAJcAAAB5Aw==",
	"AudioQualityMode":               "AAAAAgAAAJcAAAB7Aw==",
	"DemoMode":                       "AAAAAgAAAJcAAAB8Aw==",

	// Tuner keys
	"Analog":        "AAAAAgAAAHcAAAANAw==",
	"Mode3D":        "AAAAAgAAAHcAAABNAw==",
	"DigitalToggle": "AAAAAgAAAHcAAABSAw==",
	"DemoSurround":  "AAAAAgAAAHcAAAB7Aw==",

	// Input and application keys
	"*AD":             "AAAAAgAAABoAAAA7Aw==",
	"AudioMixUp":      "AAAAAgAAABoAAAA8Aw==",
	"AudioMixDown":    "AAAAAgAAABoAAAA9Aw==",
	"PhotoFrame":      "AAAAAgAAABoAAABVAw==",
	"Tv_Radio":        "AAAAAgAAABoAAABXAw==",
	"SyncMenu":        "AAAAAgAAABoAAABYAw==",
	"Hdmi1":           "AAAAAgAAABoAAABaAw==",
	"Hdmi2":           "AAAAAgAAABoAAABbAw==",
	"Hdmi3":           "AAAAAgAAABoAAABcAw==",
	"Hdmi4":           "AAAAAgAAABoAAABdAw==",
	"TopMenu":         "AAAAAgAAABoAAABgAw==",
	"PopUpMenu":       "AAAAAgAAABoAAABhAw==",
	"OneTouchTimeRec": "AAAAAgAAABoAAABkAw==",
	"OneTouchView":    "AAAAAgAAABoAAABlAw==",
	"DUX":             "AAAAAgAAABoAAABzAw==",
	"FootballMode":    "AAAAAgAAABoAAAB2Aw==",
	"iManual":         "AAAAAgAAABoAAAB7Aw==",
	"Netflix":         "AAAAAgAAABoAAAB8Aw==",

	// Assist keys
	"Assists":           "AAAAAgAAAMQAAAA7Aw==",
	"ActionMenu":        "AAAAAgAAAMQAAABLAw==",
	"Help":              "AAAAAgAAAMQAAABNAw==",
	"TvSatellite":       "AAAAAgAAAMQAAABOAw==",
	"WirelessSubwoofer": "AAAAAgAAAMQAAAB+Aw==",
}

// Lookup returns the IRCC code for a symbolic command name. Names are matched
// exactly, case included.
func Lookup(name string) (BraviaRemoteCode, bool) {
	code, ok := commandTable[name]
	return code, ok
}

// Commands returns every known command name in sorted order
func Commands() []string {
	names := make([]string, 0, len(commandTable))
	for name := range commandTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
