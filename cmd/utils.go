package cmd

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var replacer = strings.NewReplacer(".", "_", "-", "_")

type argType interface {
	string | bool | int | time.Duration
}

func envName[T argType](cfg boundEnvVar[T]) string {
	if cfg.Env != "" {
		return cfg.Env
	}
	return strings.ToUpper(replacer.Replace(cfg.Name))
}

// envOverrides holds one setter per flag whose environment variable was set at bind time.
// reloadConfig replays them after a configuration file overwrote the bound variables.
var envOverrides []func()

func recordEnv[T argType](fromEnv bool, v *T, value T) {
	if fromEnv {
		envOverrides = append(envOverrides, func() { *v = value })
	}
}

// bindEnvMap registers one persistent flag per entry. The current value of the bound variable is
// the flag default unless the matching environment variable is set.
func bindEnvMap[T argType](cmd *cobra.Command, m map[*T]boundEnvVar[T]) {
	flags := cmd.PersistentFlags()
	for v, cfg := range m {
		env := envName(cfg)
		desc := fmt.Sprintf("[%s] %s", env, cfg.Description)
		_, fromEnv := os.LookupEnv(env)

		switch vt := any(v).(type) {
		case *string:
			def := *vt
			if fromEnv {
				def = viper.GetString(env)
			}
			recordEnv(fromEnv, vt, def)
			flags.StringVarP(vt, cfg.Name, cfg.Short, def, desc)
		case *bool:
			def := *vt
			if fromEnv {
				def = viper.GetBool(env)
			}
			recordEnv(fromEnv, vt, def)
			flags.BoolVarP(vt, cfg.Name, cfg.Short, def, desc)
		case *int:
			def := *vt
			if fromEnv {
				def = viper.GetInt(env)
			}
			recordEnv(fromEnv, vt, def)
			if cfg.Count {
				flags.CountVarP(vt, cfg.Name, cfg.Short, desc)
				_ = flags.Lookup(cfg.Name).Value.Set(strconv.Itoa(def))
			} else {
				flags.IntVarP(vt, cfg.Name, cfg.Short, def, desc)
			}
		case *time.Duration:
			def := *vt
			if fromEnv {
				def = viper.GetDuration(env)
			}
			recordEnv(fromEnv, vt, def)
			flags.DurationVarP(vt, cfg.Name, cfg.Short, def, desc)
		default:
			log.Panicf("command-args parsing error: unhandled default case for type %T", vt)
		}

		_ = viper.BindPFlag(cfg.Name, flags.Lookup(cfg.Name))
		_ = viper.BindEnv(cfg.Name, env)

		if cfg.Hidden {
			_ = flags.MarkHidden(cfg.Name)
		}
	}
}
