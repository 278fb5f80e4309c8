// Package main 无窗口对战模拟器
//
// 不启动 ebiten，直接按固定步长推进 Arena，用于调试波次表和单位数值。
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Headless dungeon match simulator",
	Long:  `simulate runs dungeon matches without a window and prints wave progression and the result.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "data", "配置目录")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(unitsCmd)
}
