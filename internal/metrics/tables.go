package metrics

// Built-in rule tables for the supported languages. Node kinds follow
// the tree-sitter grammars the parser layer uses.
//
// Nesting membership is a deliberate per-kind choice and differs
// between languages: JavaScript/Java catch clauses raise nesting for
// their body, Python except/elif clauses do not (an elif continues an
// existing chain rather than opening a new level).

func set(kinds ...string) map[string]bool {
	m := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		m[k] = true
	}
	return m
}

func weights(kinds ...string) map[string]int {
	m := make(map[string]int, len(kinds))
	for _, k := range kinds {
		m[k] = 1
	}
	return m
}

var symbolOperators = set("&&", "||")

func goRules() RuleTable {
	return RuleTable{
		Language: LangGo,
		Increments: weights(
			"if_statement",
			"for_statement",
			"expression_case",
			"type_case",
			"communication_case",
		),
		BooleanNodes: set("binary_expression"),
		Operators:    symbolOperators,
		Nesting: set(
			"if_statement",
			"for_statement",
			"expression_switch_statement",
			"type_switch_statement",
			"select_statement",
		),
		Functions: set("function_declaration", "method_declaration", "func_literal"),
		Anonymous: set("func_literal"),
		NameNodes: set("identifier", "field_identifier"),
	}
}

func javascriptRules() RuleTable {
	return RuleTable{
		Language: LangJavaScript,
		Increments: weights(
			"if_statement",
			"for_statement",
			"for_in_statement",
			"while_statement",
			"do_statement",
			"switch_case",
			"catch_clause",
			"ternary_expression",
		),
		BooleanNodes: set("binary_expression"),
		Operators:    symbolOperators,
		Nesting: set(
			"if_statement",
			"for_statement",
			"for_in_statement",
			"while_statement",
			"do_statement",
			"switch_statement",
			"catch_clause",
		),
		Functions: set(
			"function_declaration",
			"function_expression",
			"arrow_function",
			"method_definition",
			"generator_function_declaration",
		),
		Anonymous: set("arrow_function", "function_expression"),
		NameNodes: set("identifier", "property_identifier"),
	}
}

func typescriptRules() RuleTable {
	t := javascriptRules()
	t.Language = LangTypeScript
	return t
}

func tsxRules() RuleTable {
	t := javascriptRules()
	t.Language = LangTSX
	return t
}

func pythonRules() RuleTable {
	return RuleTable{
		Language: LangPython,
		Increments: weights(
			"if_statement",
			"elif_clause",
			"for_statement",
			"while_statement",
			"except_clause",
			"conditional_expression",
			"list_comprehension",
			"dictionary_comprehension",
			"set_comprehension",
			"generator_expression",
		),
		BooleanNodes: set("boolean_operator"),
		Operators:    set("and", "or"),
		Nesting: set(
			"if_statement",
			"for_statement",
			"while_statement",
			"try_statement",
			"with_statement",
		),
		Functions: set("function_definition", "lambda"),
		Anonymous: set("lambda"),
		NameNodes: set("identifier"),
	}
}

func rustRules() RuleTable {
	return RuleTable{
		Language: LangRust,
		Increments: weights(
			"if_expression",
			"match_arm",
			"while_expression",
			"loop_expression",
			"for_expression",
		),
		BooleanNodes: set("binary_expression"),
		Operators:    symbolOperators,
		Nesting: set(
			"if_expression",
			"match_expression",
			"while_expression",
			"loop_expression",
			"for_expression",
		),
		Functions: set("function_item", "closure_expression"),
		Anonymous: set("closure_expression"),
		NameNodes: set("identifier"),
	}
}

func javaRules() RuleTable {
	return RuleTable{
		Language: LangJava,
		Increments: weights(
			"if_statement",
			"for_statement",
			"enhanced_for_statement",
			"while_statement",
			"do_statement",
			"switch_block_statement_group",
			"catch_clause",
			"ternary_expression",
		),
		BooleanNodes: set("binary_expression"),
		Operators:    symbolOperators,
		Nesting: set(
			"if_statement",
			"for_statement",
			"enhanced_for_statement",
			"while_statement",
			"do_statement",
			"switch_expression",
			"catch_clause",
		),
		Functions: set("method_declaration", "constructor_declaration", "lambda_expression"),
		Anonymous: set("lambda_expression"),
		NameNodes: set("identifier"),
	}
}

func kotlinRules() RuleTable {
	return RuleTable{
		Language: LangKotlin,
		Increments: weights(
			"if_expression",
			"when_entry",
			"for_statement",
			"while_statement",
			"do_while_statement",
			"catch_block",
		),
		BooleanNodes: set("binary_expression"),
		Operators:    symbolOperators,
		Nesting: set(
			"if_expression",
			"when_expression",
			"for_statement",
			"while_statement",
			"do_while_statement",
			"try_expression",
		),
		Functions: set("function_declaration", "lambda_literal", "anonymous_function"),
		Anonymous: set("lambda_literal", "anonymous_function"),
		NameNodes: set("simple_identifier"),
	}
}

// BuiltinTables returns the rule tables for every supported language.
func BuiltinTables() []RuleTable {
	return []RuleTable{
		goRules(),
		javascriptRules(),
		typescriptRules(),
		tsxRules(),
		pythonRules(),
		rustRules(),
		javaRules(),
		kotlinRules(),
	}
}
