/*
包 metrics 提供基于 Prometheus 的文件读写指标采集能力。

# 概述

本包通过 Collector 统一注册和记录 Prometheus 指标，使用 promauto
自动注册机制，避免手动管理 Registry。所有指标按 namespace 隔离，
按 format/op/status 分组。命令行一次性运行结束后，可通过
WriteTextfile 将指标写入 node-exporter textfile 目录。

# 核心类型

  - Collector：指标收集器，nil Collector 的所有记录方法均为空操作。

# 主要能力

  - 加载指标：加载次数（按 format/status）、行数、耗时。
  - 写入指标：写入次数（按 format/status）、行数、耗时。
*/
package metrics
