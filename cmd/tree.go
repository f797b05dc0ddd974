package cmd

import (
	"fmt"
	"strconv"
	"strings"

	v1 "github.com/emrgen/cms/apis/v1"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "taxonomy term commands",
}

var navCmd = &cobra.Command{
	Use:   "nav",
	Short: "navigation commands",
}

func init() {
	rootCmd.AddCommand(termCmd)
	termCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	termCmd.AddCommand(addTermCmd())
	termCmd.AddCommand(moveTermCmd())
	termCmd.AddCommand(listTermsCmd())
	termCmd.AddCommand(deleteTermCmd())

	rootCmd.AddCommand(navCmd)
	navCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	navCmd.AddCommand(addNavNodeCmd())
	navCmd.AddCommand(moveNavNodeCmd())
	navCmd.AddCommand(listNavNodesCmd())
	navCmd.AddCommand(navTreeCmd())
	navCmd.AddCommand(deleteNavNodeCmd())
}

func addTermCmd() *cobra.Command {
	var vocabulary string
	var term string
	var parentID string

	var required = []string{"vocabulary", "term"}

	command := &cobra.Command{
		Use:     "add",
		Short:   "add a term to a vocabulary",
		Example: "cms term add -V topics -t physics -p <parent-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, err := newClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			ctx, cancel := callContext()
			defer cancel()

			res, err := client.InsertTerm(ctx, &v1.InsertTermRequest{
				Vocabulary: vocabulary,
				Term:       term,
				ParentID:   optional(cmd, "parent-id", parentID),
			})
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("term created with id: %s", res.Term.ID)
		},
	}

	command.Flags().StringVarP(&vocabulary, "vocabulary", "V", "", "vocabulary (required)")
	command.Flags().StringVarP(&term, "term", "t", "", "term (required)")
	command.Flags().StringVarP(&parentID, "parent-id", "p", "", "parent term id")
	command.Flags().SortFlags = false

	return command
}

func moveTermCmd() *cobra.Command {
	var termID string
	var parentID string

	var required = []string{"term-id"}

	command := &cobra.Command{
		Use:   "move",
		Short: "move a term under another parent, or to the root without --parent-id",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, err := newClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			ctx, cancel := callContext()
			defer cancel()

			res, err := client.MoveTerm(ctx, &v1.MoveTermRequest{
				ID:       termID,
				ParentID: optional(cmd, "parent-id", parentID),
			})
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("term moved: %s (position %d)", res.Term.ID, res.Term.Position)
		},
	}

	command.Flags().StringVarP(&termID, "term-id", "i", "", "term id (required)")
	command.Flags().StringVarP(&parentID, "parent-id", "p", "", "new parent term id")
	command.Flags().SortFlags = false

	return command
}

func listTermsCmd() *cobra.Command {
	var vocabulary string
	var parentID string

	command := &cobra.Command{
		Use:   "list",
		Short: "list the root terms of a vocabulary or the children of a term",
		Run: func(cmd *cobra.Command, args []string) {
			if !cmd.Flag("vocabulary").Changed && !cmd.Flag("parent-id").Changed {
				color.Red("missing: --vocabulary or --parent-id")
				return
			}

			client, err := newClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			ctx, cancel := callContext()
			defer cancel()

			res, err := client.ListTerms(ctx, &v1.ListTermsRequest{
				Vocabulary: vocabulary,
				ParentID:   optional(cmd, "parent-id", parentID),
			})
			if err != nil {
				logrus.Error(err)
				return
			}

			rows := make([][]string, 0, len(res.Terms))
			for _, t := range res.Terms {
				rows = append(rows, []string{t.ID, t.Term, t.Vocabulary, itoa(t.Position)})
			}
			renderTable([]string{"ID", "Term", "Vocabulary", "Position"}, rows)
		},
	}

	command.Flags().StringVarP(&vocabulary, "vocabulary", "V", "", "vocabulary")
	command.Flags().StringVarP(&parentID, "parent-id", "p", "", "parent term id")
	command.Flags().SortFlags = false

	return command
}

func deleteTermCmd() *cobra.Command {
	var termID string
	var cascade bool

	var required = []string{"term-id"}

	command := &cobra.Command{
		Use:   "delete",
		Short: "delete a term",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, err := newClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			ctx, cancel := callContext()
			defer cancel()

			res, err := client.DeleteTerm(ctx, &v1.DeleteTermRequest{ID: termID, Cascade: cascade})
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("%d terms deleted", res.Deleted)
		},
	}

	command.Flags().StringVarP(&termID, "term-id", "i", "", "term id (required)")
	command.Flags().BoolVar(&cascade, "cascade", false, "delete the descendants too")
	command.Flags().SortFlags = false

	return command
}

func addNavNodeCmd() *cobra.Command {
	var label string
	var path string
	var parentID string
	var order int
	var hidden bool

	var required = []string{"label", "path"}

	command := &cobra.Command{
		Use:     "add",
		Short:   "add a navigation node",
		Example: "cms nav add -l About -u /about -p <parent-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, err := newClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			ctx, cancel := callContext()
			defer cancel()

			visible := !hidden
			res, err := client.InsertNavNode(ctx, &v1.InsertNavNodeRequest{
				Label:    label,
				Path:     path,
				ParentID: optional(cmd, "parent-id", parentID),
				Order:    order,
				Visible:  &visible,
			})
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("navigation node created with id: %s", res.Node.ID)
		},
	}

	command.Flags().StringVarP(&label, "label", "l", "", "label (required)")
	command.Flags().StringVarP(&path, "path", "u", "", "path (required)")
	command.Flags().StringVarP(&parentID, "parent-id", "p", "", "parent node id")
	command.Flags().IntVarP(&order, "order", "o", 0, "sort order among siblings")
	command.Flags().BoolVar(&hidden, "hidden", false, "hide the node from the menu")
	command.Flags().SortFlags = false

	return command
}

func moveNavNodeCmd() *cobra.Command {
	var nodeID string
	var parentID string
	var order int

	var required = []string{"node-id"}

	command := &cobra.Command{
		Use:   "move",
		Short: "move a navigation node, to the root without --parent-id",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, err := newClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			ctx, cancel := callContext()
			defer cancel()

			req := &v1.MoveNavNodeRequest{
				ID:       nodeID,
				ParentID: optional(cmd, "parent-id", parentID),
			}
			if cmd.Flag("order").Changed {
				req.Order = &order
			}

			res, err := client.MoveNavNode(ctx, req)
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("navigation node moved: %s", res.Node.ID)
		},
	}

	command.Flags().StringVarP(&nodeID, "node-id", "i", "", "node id (required)")
	command.Flags().StringVarP(&parentID, "parent-id", "p", "", "new parent node id")
	command.Flags().IntVarP(&order, "order", "o", 0, "new sort order")
	command.Flags().SortFlags = false

	return command
}

func listNavNodesCmd() *cobra.Command {
	var parentID string

	command := &cobra.Command{
		Use:   "list",
		Short: "list the children of a node, the roots without --parent-id",
		Run: func(cmd *cobra.Command, args []string) {
			client, err := newClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			ctx, cancel := callContext()
			defer cancel()

			res, err := client.ListNavNodes(ctx, &v1.ListNavNodesRequest{ParentID: optional(cmd, "parent-id", parentID)})
			if err != nil {
				logrus.Error(err)
				return
			}

			rows := make([][]string, 0, len(res.Nodes))
			for _, n := range res.Nodes {
				rows = append(rows, []string{n.ID, n.Label, n.Path, strconv.Itoa(n.Order), strconv.FormatBool(n.Visible)})
			}
			renderTable([]string{"ID", "Label", "Path", "Order", "Visible"}, rows)
		},
	}

	command.Flags().StringVarP(&parentID, "parent-id", "p", "", "parent node id")

	return command
}

func navTreeCmd() *cobra.Command {
	var all bool

	command := &cobra.Command{
		Use:   "tree",
		Short: "print the navigation menu",
		Run: func(cmd *cobra.Command, args []string) {
			client, err := newClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			ctx, cancel := callContext()
			defer cancel()

			res, err := client.GetNavTree(ctx, &v1.GetNavTreeRequest{IncludeHidden: all})
			if err != nil {
				logrus.Error(err)
				return
			}

			printNavTree(res.Nodes, 0)
		},
	}

	command.Flags().BoolVarP(&all, "all", "a", false, "include hidden nodes")

	return command
}

func printNavTree(nodes []*v1.NavNode, depth int) {
	for _, n := range nodes {
		indent := strings.Repeat("  ", depth)
		if n.Visible {
			fmt.Printf("%s%s %s\n", indent, n.Label, color.CyanString(n.Path))
		} else {
			fmt.Printf("%s%s %s %s\n", indent, n.Label, color.CyanString(n.Path), color.YellowString("(hidden)"))
		}
		printNavTree(n.Children, depth+1)
	}
}

func deleteNavNodeCmd() *cobra.Command {
	var nodeID string
	var cascade bool

	var required = []string{"node-id"}

	command := &cobra.Command{
		Use:   "delete",
		Short: "delete a navigation node",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, err := newClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			ctx, cancel := callContext()
			defer cancel()

			res, err := client.DeleteNavNode(ctx, &v1.DeleteNavNodeRequest{ID: nodeID, Cascade: cascade})
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("%d navigation nodes deleted", res.Deleted)
		},
	}

	command.Flags().StringVarP(&nodeID, "node-id", "i", "", "node id (required)")
	command.Flags().BoolVar(&cascade, "cascade", false, "delete the descendants too")
	command.Flags().SortFlags = false

	return command
}
