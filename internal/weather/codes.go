package weather

// CodeInfo describes a WMO weather code as shown to users.
type CodeInfo struct {
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Condition   Condition `json:"condition"`
}

var unknownCode = CodeInfo{Description: "Unknown", Icon: "❓", Condition: ConditionUnknown}

var weatherCodes = map[int]CodeInfo{
	0:  {Description: "Clear sky", Icon: "☀️"},
	1:  {Description: "Mainly clear", Icon: "🌤️"},
	2:  {Description: "Partly cloudy", Icon: "⛅"},
	3:  {Description: "Overcast", Icon: "☁️"},
	45: {Description: "Fog", Icon: "🌫️"},
	48: {Description: "Depositing rime fog", Icon: "🌫️"},
	51: {Description: "Light drizzle", Icon: "🌦️"},
	53: {Description: "Moderate drizzle", Icon: "🌦️"},
	55: {Description: "Dense drizzle", Icon: "🌧️"},
	56: {Description: "Light freezing drizzle", Icon: "🌧️❄️"},
	57: {Description: "Dense freezing drizzle", Icon: "🌧️❄️"},
	61: {Description: "Slight rain", Icon: "🌧️"},
	63: {Description: "Moderate rain", Icon: "🌧️"},
	65: {Description: "Heavy rain", Icon: "⛈️"},
	66: {Description: "Light freezing rain", Icon: "🌧️❄️"},
	67: {Description: "Heavy freezing rain", Icon: "🌧️❄️"},
	71: {Description: "Slight snow", Icon: "🌨️"},
	73: {Description: "Moderate snow", Icon: "🌨️"},
	75: {Description: "Heavy snow", Icon: "❄️"},
	77: {Description: "Snow grains", Icon: "❄️"},
	80: {Description: "Slight rain showers", Icon: "🌦️"},
	81: {Description: "Moderate rain showers", Icon: "🌧️"},
	82: {Description: "Violent rain showers", Icon: "⛈️"},
	85: {Description: "Slight snow showers", Icon: "🌨️"},
	86: {Description: "Heavy snow showers", Icon: "❄️"},
	95: {Description: "Thunderstorm", Icon: "⛈️"},
	96: {Description: "Thunderstorm with slight hail", Icon: "⛈️"},
	99: {Description: "Thunderstorm with heavy hail", Icon: "⛈️"},
}

// LookupCode returns the description and icon for a WMO weather code.
// Codes outside the table map to the "Unknown" entry.
func LookupCode(code int) CodeInfo {
	info, ok := weatherCodes[code]
	if !ok {
		return unknownCode
	}
	info.Condition = classifyCode(code)
	return info
}

func classifyCode(code int) Condition {
	switch {
	case code == 0:
		return ConditionClear
	case code >= 1 && code <= 3:
		return ConditionCloudy
	case code == 45 || code == 48:
		return ConditionMist
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return ConditionRain
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return ConditionSnow
	case code >= 95:
		return ConditionStorm
	default:
		return ConditionUnknown
	}
}
