package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/ebnfgen/internal/cli/output"
	"github.com/leapstack-labs/ebnfgen/internal/engine"
	"github.com/spf13/cobra"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Rule string // Show details for one rule
	Docs bool   // Show docstrings in the listing
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [file]",
		Short: "List the rules of a grammar description",
		Long: `List the rules of a grammar description with their mode, collapse
target, alternatives and variants. Rules that no other rule references
are flagged; they are the candidate start rules.

Output adapts to environment:
  - Terminal: Styled table
  - Piped/Scripted: Markdown table
  - JSON/YAML: Machine-readable format (--output json|yaml)`,
		Example: `  # List all rules
  ebnfgen rules types.ebnf

  # Show details for a specific rule
  ebnfgen rules types.ebnf --rule compound

  # Output as YAML
  ebnfgen rules types.ebnf -o yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Rule, "rule", "r", "", "Show details for one rule")
	cmd.Flags().BoolVarP(&opts.Docs, "docs", "d", false, "Show rule documentation")

	return cmd
}

// RulesOutput is the structured output for the rules listing.
type RulesOutput struct {
	Grammar string            `json:"grammar" yaml:"grammar"`
	Rules   []engine.RuleInfo `json:"rules" yaml:"rules"`
	Count   struct {
		Parse int `json:"parse" yaml:"parse"`
		Lexer int `json:"lexer" yaml:"lexer"`
		Total int `json:"total" yaml:"total"`
	} `json:"count" yaml:"count"`
}

func runRules(cmd *cobra.Command, args []string, opts *RulesOptions) error {
	cmdCtx := NewCommandContext(cmd, "")
	path := cmdCtx.InputPaths(args)[0]

	input, err := cmdCtx.ReadInput(path)
	if err != nil {
		return err
	}
	g, err := cmdCtx.Engine.Grammar(cmd.Context(), input)
	if err != nil {
		return fmt.Errorf("%s:%w", path, err)
	}

	rules := engine.Inspect(g)
	if opts.Rule != "" {
		for i := range rules {
			if rules[i].Name == opts.Rule {
				return showRule(cmdCtx.Renderer, &rules[i])
			}
		}
		return fmt.Errorf("rule %q not found in %s", opts.Rule, path)
	}

	out := RulesOutput{Grammar: engine.GrammarNameFor(path), Rules: rules}
	for _, rule := range rules {
		if rule.Mode == "parse" {
			out.Count.Parse++
		} else {
			out.Count.Lexer++
		}
	}
	out.Count.Total = len(rules)

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeYAML:
		return r.YAML(out)
	case output.ModeMarkdown:
		return listRulesMarkdown(r, &out, opts.Docs)
	default:
		return listRulesText(r, &out, opts.Docs)
	}
}

func rulesTable(r *output.Renderer, rules []engine.RuleInfo) {
	rows := make([][]string, 0, len(rules))
	for _, rule := range rules {
		unreferenced := ""
		if rule.Unreferenced {
			unreferenced = "yes"
		}
		rows = append(rows, []string{
			rule.Name,
			rule.Mode,
			rule.CollapseInto,
			strconv.Itoa(rule.Alters),
			strings.Join(rule.Variants, ", "),
			unreferenced,
		})
	}
	r.Table([]string{"Rule", "Mode", "Collapse", "Alts", "Variants", "Unreferenced"}, rows)
}

// listRulesText outputs rules in styled text format.
func listRulesText(r *output.Renderer, out *RulesOutput, docs bool) error {
	styles := r.Styles()

	r.Println("")
	r.Header(1, fmt.Sprintf("%s (%d parse, %d lexer)", out.Grammar, out.Count.Parse, out.Count.Lexer))
	r.Println("")
	rulesTable(r, out.Rules)

	if docs {
		r.Println("")
		for _, rule := range out.Rules {
			if rule.Doc == "" {
				continue
			}
			r.Printf("  %s  %s\n", styles.Bold.Render(rule.Name), styles.Muted.Render(rule.Doc))
		}
	}

	r.Println("")
	r.Println(styles.Muted.Render("Use 'ebnfgen rules <file> --rule <name>' for details"))
	return nil
}

// listRulesMarkdown outputs rules in markdown format.
func listRulesMarkdown(r *output.Renderer, out *RulesOutput, docs bool) error {
	r.Header(1, out.Grammar)
	r.Println("")
	rulesTable(r, out.Rules)

	if docs {
		r.Println("")
		for _, rule := range out.Rules {
			if rule.Doc != "" {
				r.Printf("- **%s** - %s\n", rule.Name, rule.Doc)
			}
		}
	}
	return nil
}

// showRule displays one rule in the renderer's mode.
func showRule(r *output.Renderer, rule *engine.RuleInfo) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(rule)
	case output.ModeYAML:
		return r.YAML(rule)
	}

	markdown := r.EffectiveMode() == output.ModeMarkdown
	styles := r.Styles()
	field := func(key, value string) {
		if value == "" {
			return
		}
		if markdown {
			r.Println("- " + output.FormatKeyValue(key, value))
			return
		}
		r.Printf("  %s: %s\n", styles.Bold.Render(key), value)
	}

	r.Header(1, rule.Name)
	r.Println("")
	if rule.Doc != "" {
		r.Println(rule.Doc)
		r.Println("")
	}
	field("Mode", rule.Mode)
	field("Collapse", rule.CollapseInto)
	field("Line", strconv.Itoa(rule.Line))
	field("Alternatives", strconv.Itoa(rule.Alters))
	field("Variants", strings.Join(rule.Variants, ", "))
	field("References", strings.Join(rule.References, ", "))
	field("Recursive", strconv.FormatBool(rule.Recursive))
	field("Unreferenced", strconv.FormatBool(rule.Unreferenced))
	return nil
}
