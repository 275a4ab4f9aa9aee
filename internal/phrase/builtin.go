package phrase

// builtin 为内置中英短语表（Zig 示例代码注释常用词）。
// 顺序即优先级：同一短语（忽略大小写）首次出现者生效。
var builtin = []Pair{
	// 核心概念（保持准确性）
	{Source: "entry point", Target: "程序入口点"},
	{Source: "control flow", Target: "控制流"},
	{Source: "debug mode", Target: "调试模式"},
	{Source: "release mode", Target: "发布模式"},
	{Source: "error handling", Target: "错误处理"},
	{Source: "error union", Target: "错误联合类型"},
	{Source: "compile time", Target: "编译时"},
	{Source: "run time", Target: "运行时"},
	{Source: "standard output", Target: "标准输出"},
	{Source: "command line", Target: "命令行"},
	{Source: "command line arguments", Target: "命令行参数"},
	{Source: "file path", Target: "文件路径"},
	{Source: "temporary file", Target: "临时文件"},
	{Source: "build mode", Target: "构建模式"},
	{Source: "error set", Target: "错误集合"},
	{Source: "buffered writer", Target: "缓冲写入器"},
	{Source: "optional value", Target: "可选值"},
	{Source: "index capture", Target: "索引捕获"},
	{Source: "payload capture", Target: "载荷捕获"},
	{Source: "labeled blocks", Target: "带标签的代码块"},
	{Source: "descriptive label", Target: "描述性标签"},
	{Source: "value's properties", Target: "值的属性"},
	{Source: "null case", Target: "空值情况"},
	{Source: "sample value", Target: "样本值"},
	{Source: "fixed-size buffer", Target: "固定大小缓冲区"},
	{Source: "stack operations", Target: "栈操作"},
	{Source: "polymorphic I/O", Target: "多态输入输出"},
	{Source: "formatted message", Target: "格式化消息"},
	{Source: "safe by default", Target: "默认安全"},
	{Source: "atomic copy", Target: "原子复制"},
	{Source: "usage information", Target: "使用说明"},
	{Source: "validate source", Target: "验证源文件"},
	{Source: "regular file", Target: "常规文件"},
	{Source: "respect semantics", Target: "遵循语义"},
	{Source: "scripting friendly", Target: "脚本友好"},
	{Source: "pipelines quiet", Target: "管道静默"},
	{Source: "preserving mode", Target: "保留模式"},

	// 常用动作（确保准确性）
	{Source: "Import", Target: "导入"},
	{Source: "Import the", Target: "导入"},
	{Source: "Define", Target: "定义"},
	{Source: "Define a", Target: "定义一个"},
	{Source: "Create", Target: "创建"},
	{Source: "Returns", Target: "返回"},
	{Source: "Return", Target: "返回"},
	{Source: "Returns an", Target: "返回一个"},
	{Source: "Check", Target: "检查"},
	{Source: "Check for", Target: "检查"},
	{Source: "Validate", Target: "验证"},
	{Source: "Print", Target: "打印"},
	{Source: "Write", Target: "写入"},
	{Source: "Write formatted", Target: "写入格式化"},
	{Source: "Read", Target: "读取"},
	{Source: "Copy", Target: "复制"},
	{Source: "Allocate", Target: "分配"},
	{Source: "Free", Target: "释放"},
	{Source: "Attempt", Target: "尝试"},
	{Source: "Attempt to", Target: "尝试"},
	{Source: "Catch", Target: "捕获"},
	{Source: "Demonstrates", Target: "演示"},
	{Source: "Determine", Target: "确定"},
	{Source: "Uses", Target: "使用"},
	{Source: "Handle", Target: "处理"},
	{Source: "Unwrap", Target: "解包"},
	{Source: "Classify", Target: "分类"},
	{Source: "Iterate", Target: "迭代"},
	{Source: "Iterate through", Target: "遍历"},
	{Source: "Display", Target: "显示"},
	{Source: "Flush", Target: "刷新"},
	{Source: "Get", Target: "获取"},
	{Source: "Create a", Target: "创建一个"},
	{Source: "Allocates", Target: "分配"},
	{Source: "allocated", Target: "已分配"},
	{Source: "Perform", Target: "执行"},
	{Source: "Ensures", Target: "确保"},
	{Source: "ensure", Target: "确保"},

	// 名词（使用标准术语）
	{Source: "library", Target: "标准库"},
	{Source: "utility", Target: "工具函数"},
	{Source: "functions", Target: "函数"},
	{Source: "builtin", Target: "内置"},
	{Source: "information", Target: "信息"},
	{Source: "types", Target: "类型"},
	{Source: "integers", Target: "整数"},
	{Source: "floats", Target: "浮点数"},
	{Source: "strings", Target: "字符串"},
	{Source: "booleans", Target: "布尔值"},
	{Source: "values", Target: "值"},
	{Source: "literal", Target: "字面量"},
	{Source: "file", Target: "文件"},
	{Source: "files", Target: "文件"},
	{Source: "path", Target: "路径"},
	{Source: "source", Target: "源文件"},
	{Source: "destination", Target: "目标文件"},
	{Source: "buffer", Target: "缓冲区"},
	{Source: "error", Target: "错误"},
	{Source: "errors", Target: "错误"},
	{Source: "function", Target: "函数"},
	{Source: "value", Target: "值"},
	{Source: "type", Target: "类型"},
	{Source: "data", Target: "数据"},
	{Source: "array", Target: "数组"},
	{Source: "slice", Target: "切片"},
	{Source: "number", Target: "数字"},
	{Source: "numbers", Target: "数字"},
	{Source: "mode", Target: "模式"},
	{Source: "debug", Target: "调试"},
	{Source: "release", Target: "发布"},
	{Source: "build", Target: "构建"},
	{Source: "compile", Target: "编译"},
	{Source: "input", Target: "输入"},
	{Source: "output", Target: "输出"},
	{Source: "memory", Target: "内存"},
	{Source: "stack", Target: "栈"},
	{Source: "heap", Target: "堆"},
	{Source: "main", Target: "主函数"},
	{Source: "custom", Target: "自定义"},
	{Source: "standard", Target: "标准"},
	{Source: "default", Target: "默认"},
	{Source: "optional", Target: "可选"},
	{Source: "empty", Target: "空"},
	{Source: "full", Target: "满"},
	{Source: "null", Target: "空"},
	{Source: "missing", Target: "缺失"},
	{Source: "present", Target: "存在"},
	{Source: "positive", Target: "正数"},
	{Source: "negative", Target: "负数"},
	{Source: "zero", Target: "零"},
	{Source: "first", Target: "首先"},
	{Source: "last", Target: "最后一个"},
	{Source: "current", Target: "当前"},
	{Source: "invalid", Target: "无效"},
	{Source: "new", Target: "新"},
	{Source: "chapter", Target: "章节"},
	{Source: "section", Target: "节"},
	{Source: "description", Target: "描述"},
	{Source: "documentation", Target: "文档"},
	{Source: "comment", Target: "注释"},
	{Source: "example", Target: "示例"},
	{Source: "label", Target: "标签"},
	{Source: "blocks", Target: "代码块"},
	{Source: "classification", Target: "分类"},
	{Source: "properties", Target: "属性"},
	{Source: "payload", Target: "载荷"},
	{Source: "capture", Target: "捕获"},
	{Source: "syntax", Target: "语法"},
	{Source: "cases", Target: "情况"},
	{Source: "samples", Target: "样本"},
	{Source: "index", Target: "索引"},
	{Source: "corresponding", Target: "对应的"},
	{Source: "cli", Target: "命令行工具"},
	{Source: "force", Target: "强制"},
	{Source: "paths", Target: "路径"},
	{Source: "args", Target: "参数"},
	{Source: "exists", Target: "存在"},
	{Source: "semantics", Target: "语义"},
	{Source: "pipelines", Target: "管道"},
	{Source: "quiet", Target: "静默"},
	{Source: "success", Target: "成功"},
	{Source: "failed", Target: "失败"},
	{Source: "required", Target: "必需"},
	{Source: "exit", Target: "退出"},
	{Source: "code", Target: "代码"},
	{Source: "status", Target: "状态"},

	// 介词和连词（简化翻译）
	{Source: "the", Target: ""},
	{Source: "This", Target: "此"},
	{Source: "that", Target: "该"},
	{Source: "These", Target: "这些"},
	{Source: "Those", Target: "那些"},
	{Source: "A", Target: "一个"},
	{Source: "an", Target: "一个"},
	{Source: "And", Target: "和"},
	{Source: "or", Target: "或"},
	{Source: "In", Target: "在"},
	{Source: "on", Target: "在"},
	{Source: "at", Target: "在"},
	{Source: "To", Target: "到"},
	{Source: "From", Target: "从"},
	{Source: "By", Target: "通过"},
	{Source: "With", Target: "使用"},
	{Source: "using", Target: "使用"},
	{Source: "For", Target: "用于"},
	{Source: "Of", Target: "的"},
	{Source: "As", Target: "作为"},
	{Source: "If", Target: "如果"},
	{Source: "Then", Target: "那么"},
	{Source: "Else", Target: "否则"},
	{Source: "When", Target: "当"},
	{Source: "While", Target: "当"},
	{Source: "Not", Target: "不"},
	{Source: "No", Target: "不"},
	{Source: "All", Target: "所有"},
	{Source: "Each", Target: "每个"},
	{Source: "every", Target: "每个"},
	{Source: "Some", Target: "一些"},
	{Source: "one", Target: "一"},
	{Source: "two", Target: "两"},
	{Source: "three", Target: "三"},

	// 修饰词（保持专业性）
	{Source: "safe", Target: "安全"},
	{Source: "minimal", Target: "最小化"},
	{Source: "atomic", Target: "原子"},
	{Source: "buffered", Target: "缓冲"},
	{Source: "formatted", Target: "格式化"},
	{Source: "generic", Target: "通用"},
	{Source: "interface", Target: "接口"},
	{Source: "polymorphic", Target: "多态"},
	{Source: "initial", Target: "初始"},
	{Source: "final", Target: "最终"},
	{Source: "next", Target: "下一个"},
	{Source: "previous", Target: "前一个"},
	{Source: "original", Target: "原始"},
	{Source: "cleanly", Target: "简洁地"},

	// 常用短语（保持流畅）
	{Source: "Main entry point", Target: "程序主入口点"},
	{Source: "Program entry point", Target: "程序入口点"},
	{Source: "Entry point of", Target: "入口点"},
	{Source: "Import the standard library", Target: "导入标准库"},
	{Source: "Import builtin", Target: "导入内置"},
	{Source: "to access", Target: "以访问"},
	{Source: "like", Target: "如"},
	{Source: "such as", Target: "例如"},
	{Source: "for example", Target: "例如"},
	{Source: "e.g.", Target: "例如"},
	{Source: "i.e.", Target: "即"},
	{Source: "etc", Target: "等"},
	{Source: "according to", Target: "根据"},
	{Source: "based on", Target: "基于"},
	{Source: "instead of", Target: "而非"},
	{Source: "in order to", Target: "为了"},
	{Source: "so that", Target: "以便"},
	{Source: "due to", Target: "由于"},
	{Source: "because of", Target: "因为"},
	{Source: "however", Target: "然而"},
	{Source: "therefore", Target: "因此"},
	{Source: "thus", Target: "因此"},

	// 特定项目术语（保持准确性）
	{Source: "Safe File Copier", Target: "安全文件复制器"},
	{Source: "Temperature", Target: "温度"},
	{Source: "converter", Target: "转换器"},
	{Source: "argument", Target: "参数"},
	{Source: "parsing", Target: "解析"},
	{Source: "loop labels", Target: "循环标签"},
	{Source: "range scan", Target: "范围扫描"},
	{Source: "script runner", Target: "脚本运行器"},
	{Source: "branching", Target: "分支"},
	{Source: "switch examples", Target: "switch示例"},
	{Source: "essentials", Target: "要点"},
	{Source: "ziglang", Target: "Zig语言"},

	// 补充条目
	{Source: "Define a custom error", Target: "定义自定义错误"},
	{Source: "Returns an error", Target: "返回一个错误"},
	{Source: "Returns the", Target: "返回"},
	{Source: "Validates that", Target: "验证"},
	{Source: "Print startup", Target: "打印启动"},
	{Source: "Get the", Target: "获取"},
	{Source: "Standard library", Target: "标准库"},
	{Source: "Examples", Target: "示例"},
	{Source: "Main entry point of", Target: "程序主入口点"},
	{Source: "entry point of the", Target: "入口点"},
	{Source: "like build mode", Target: "如构建模式"},
}
