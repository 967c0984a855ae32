package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hazadus/tracktime/internal/clock"
)

// createFormatCommand создает команду format
func (app *Application) createFormatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "format [seconds...]",
		Short: "Format seconds as mm:ss or hh:mm:ss",
		Long:  `Print each number of seconds as a clock string: mm:ss below one hour, hh:mm:ss from one hour on.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.formatSeconds(args)
		},
	}
}

func (app *Application) formatSeconds(args []string) error {
	values := make([]int, len(args))
	for i, arg := range args {
		seconds, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("неверное количество секунд '%s': ожидается целое число", arg)
		}
		values[i] = seconds
	}

	for _, seconds := range values {
		fmt.Println(clock.Format(seconds))
	}
	return nil
}
