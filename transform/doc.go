// Package transform 提供加载结果之上的纯内存变换：
//
//   - Flatten / FlattenMap：把 “分类 -> 值列表” 展平为记录序列
//   - DefaultMap：缺失键按工厂函数惰性创建的并发安全映射
//   - WalkLeaves：按稳定顺序遍历嵌套结构的所有叶子节点
package transform
