package common

import "github.com/GiGurra/boa/pkg/boa"

// DefaultParamEnricher derives flag names from field names, short flags from
// `short` tags and treats bool fields as switches. Every karaoke subcommand
// uses it so flags look the same across commands.
func DefaultParamEnricher() boa.ParamEnricher {
	return boa.ParamEnricherCombine(
		boa.ParamEnricherBool,
		boa.ParamEnricherName,
		boa.ParamEnricherShort,
	)
}
