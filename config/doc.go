// Package config 提供 glutils 命令行工具的配置管理功能。
//
// 配置按 默认值 → YAML 文件 → 环境变量（GLUTILS_ 前缀）的顺序叠加，
// 库调用方无需使用本包，直接向 loader.New 传入 loader.Config 即可。
package config
