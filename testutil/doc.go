/*
Package testutil 提供 glutils 测试的共享工具和辅助函数。

# 概述

testutil 包为整个项目的单元测试提供统一的辅助能力，
避免各包重复实现相似的测试基础设施。

# 核心能力

  - 上下文辅助: TestContext / CancelledContext，
    自动注册 Cleanup 防止泄漏
  - 文件辅助: WriteFixture / ReadFile，基于 t.TempDir 构造输入文件

# 使用示例

	ctx := testutil.TestContext(t)
	path := testutil.WriteFixture(t, t.TempDir(), "doc.json", `{"x":1}`)
	data, err := loader.Default().Load(ctx, path)
*/
package testutil
