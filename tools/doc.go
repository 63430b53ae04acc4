// Package tools provides the built-in tool set: arithmetic evaluation,
// text statistics, date arithmetic, and weather lookup.
//
// Each constructor returns a toolagent.Tool ready to register:
//
//	reg := toolagent.NewRegistry()
//	reg.MustRegister(tools.NewCalculator())
//	reg.MustRegister(tools.NewTextAnalyzer())
//	reg.MustRegister(tools.NewDateOffset(nil))
//	reg.MustRegister(tools.NewWeather(tools.WeatherConfig{APIKey: key}))
//
// Tool names and argument schemas are the stable contract the model
// ecosystem sees; changing them changes what deployed prompts can call.
package tools
