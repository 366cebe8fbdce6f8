/*
Package types 提供 glutils 的共享类型定义。

# 概述

types 是最底层的公共包，不依赖任何内部包，为 loader、transform 和命令行
工具提供统一的数据与错误契约。

# 核心类型

  - Row     ：单条记录（map[string]any）
  - Records ：有序记录序列，JSON 数组、JSONL、CSV 均加载为 Records
  - Document：单个键值映射，JSON 对象加载为 Document
  - Data    ：Records 与 Document 的带标签联合，调用方通过 Kind / Match 分支
  - Error   ：结构化错误，携带 ErrorCode、出错路径与底层原因

# 聚合

Concat 按第一个分片的形状合并多个 Data：Records 依次拼接，Document 按顺序
合并，后出现的键覆盖先出现的键；形状不一致时返回 SHAPE_MISMATCH。
*/
package types
