package dgus

import "strconv"

// Screen is a page of the display project.
type Screen uint8

const (
	ScreenBoot              Screen = 0
	ScreenHome              Screen = 1
	ScreenPrint             Screen = 2
	ScreenPrintStatus       Screen = 3
	ScreenPrintAdjust       Screen = 4
	ScreenPrintFinished     Screen = 5
	ScreenTempMenu          Screen = 6
	ScreenTempManual        Screen = 7
	ScreenFan               Screen = 8
	ScreenSettingsMenu      Screen = 9
	ScreenLevelingMenu      Screen = 10
	ScreenLevelingOffset    Screen = 11
	ScreenLevelingManual    Screen = 12
	ScreenLevelingAutomatic Screen = 13
	ScreenLevelingProbing   Screen = 14
	ScreenFilament          Screen = 15
	ScreenMove              Screen = 16
	ScreenGcode             Screen = 17
	ScreenSettingsMenu2     Screen = 18
	ScreenInfos             Screen = 19
	ScreenPID               Screen = 20
	ScreenPowerLoss         Screen = 21
	ScreenWait              Screen = 22
	ScreenKill              Screen = 23
	ScreenAbortConfirm      Screen = 24
	ScreenPauseConfirm      Screen = 25
	ScreenResumeConfirm     Screen = 26
	ScreenDebug             Screen = 240
)

var screenNames = map[Screen]string{
	ScreenBoot:              "BOOT",
	ScreenHome:              "HOME",
	ScreenPrint:             "PRINT",
	ScreenPrintStatus:       "PRINT_STATUS",
	ScreenPrintAdjust:       "PRINT_ADJUST",
	ScreenPrintFinished:     "PRINT_FINISHED",
	ScreenTempMenu:          "TEMP_MENU",
	ScreenTempManual:        "TEMP_MANUAL",
	ScreenFan:               "FAN",
	ScreenSettingsMenu:      "SETTINGS_MENU",
	ScreenLevelingMenu:      "LEVELING_MENU",
	ScreenLevelingOffset:    "LEVELING_OFFSET",
	ScreenLevelingManual:    "LEVELING_MANUAL",
	ScreenLevelingAutomatic: "LEVELING_AUTOMATIC",
	ScreenLevelingProbing:   "LEVELING_PROBING",
	ScreenFilament:          "FILAMENT",
	ScreenMove:              "MOVE",
	ScreenGcode:             "GCODE",
	ScreenSettingsMenu2:     "SETTINGS_MENU2",
	ScreenInfos:             "INFOS",
	ScreenPID:               "PID",
	ScreenPowerLoss:         "POWERLOSS",
	ScreenWait:              "WAIT",
	ScreenKill:              "KILL",
	ScreenAbortConfirm:      "ABORT_CONFIRM",
	ScreenPauseConfirm:      "PAUSE_CONFIRM",
	ScreenResumeConfirm:     "RESUME_CONFIRM",
	ScreenDebug:             "DEBUG",
}

func (s Screen) String() string {
	if name, ok := screenNames[s]; ok {
		return name
	}
	return "SCREEN_" + strconv.Itoa(int(s))
}

// ParseScreen looks a screen up by its name.
func ParseScreen(name string) (Screen, bool) {
	for s, n := range screenNames {
		if n == name {
			return s, true
		}
	}
	return 0, false
}
