package cmd

import (
	"strconv"

	v1 "github.com/emrgen/cms/apis/v1"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "content commands",
}

var revisionCmd = &cobra.Command{
	Use:   "revision",
	Short: "revision commands",
}

var translationCmd = &cobra.Command{
	Use:   "translation",
	Short: "translation commands",
}

func init() {
	rootCmd.AddCommand(contentCmd)
	contentCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	contentCmd.AddCommand(createContentCmd())
	contentCmd.AddCommand(getContentCmd())
	contentCmd.AddCommand(listContentCmd())
	contentCmd.AddCommand(updateContentCmd())
	contentCmd.AddCommand(deleteContentCmd())

	rootCmd.AddCommand(revisionCmd)
	revisionCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	revisionCmd.AddCommand(listRevisionsCmd())
	revisionCmd.AddCommand(getRevisionCmd())
	revisionCmd.AddCommand(restoreRevisionCmd())

	rootCmd.AddCommand(translationCmd)
	translationCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	translationCmd.AddCommand(setTranslationCmd())
	translationCmd.AddCommand(listTranslationsCmd())
	translationCmd.AddCommand(deleteTranslationCmd())
}

func printContent(content *v1.Content) {
	renderTable([]string{"ID", "Collection", "Status", "Version", "Modified", "Published"}, [][]string{{
		content.ID,
		content.Collection,
		content.Status,
		itoa(content.Version),
		formatTime(&content.LastModified),
		formatTime(content.PublishedAt),
	}})
	printJSON("Data", content.Data)
}

func createContentCmd() *cobra.Command {
	var collection string
	var data string
	var status string

	var required = []string{"collection"}

	command := &cobra.Command{
		Use:     "create",
		Short:   "create a content item",
		Example: `cms content create -c article -d '{"title":"Hello"}'`,
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			payload, ok := rawJSON("data", data)
			if !ok {
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

			res, err := client.CreateContent(ctx, &v1.CreateContentRequest{
				Collection: collection,
				Data:       payload,
				Status:     status,
			})
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("content created with id: %s", res.Content.ID)
		},
	}

	command.Flags().StringVarP(&collection, "collection", "c", "", "collection name (required)")
	command.Flags().StringVarP(&data, "data", "d", "", "item data as json")
	command.Flags().StringVarP(&status, "status", "s", "", "draft or published")
	command.Flags().SortFlags = false

	return command
}

func getContentCmd() *cobra.Command {
	var itemID string
	var language string

	var required = []string{"item-id"}

	command := &cobra.Command{
		Use:     "get",
		Short:   "get a content item",
		Example: "cms content get -i <item-id> -l de",
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

			res, err := client.GetContent(ctx, &v1.GetContentRequest{ID: itemID, Language: language})
			if err != nil {
				logrus.Error(err)
				return
			}

			printContent(res.Content)
		},
	}

	command.Flags().StringVarP(&itemID, "item-id", "i", "", "item id (required)")
	command.Flags().StringVarP(&language, "lang", "l", "", "language to overlay")
	command.Flags().SortFlags = false

	return command
}

func listContentCmd() *cobra.Command {
	var collection string
	var status string
	var offset int
	var limit int

	var required = []string{"collection"}

	command := &cobra.Command{
		Use:   "list",
		Short: "list the items of a collection",
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

			res, err := client.ListContent(ctx, &v1.ListContentRequest{
				Collection: collection,
				Status:     status,
				Offset:     offset,
				Limit:      limit,
			})
			if err != nil {
				logrus.Error(err)
				return
			}

			rows := make([][]string, 0, len(res.Items))
			for _, item := range res.Items {
				rows = append(rows, []string{item.ID, item.Status, itoa(item.Version), item.CreatedBy, formatTime(&item.LastModified)})
			}
			renderTable([]string{"ID", "Status", "Version", "Created By", "Modified"}, rows)
			printField("Total", itoa(res.Total))
		},
	}

	command.Flags().StringVarP(&collection, "collection", "c", "", "collection name (required)")
	command.Flags().StringVarP(&status, "status", "s", "", "only items with this status")
	command.Flags().IntVarP(&offset, "offset", "o", 0, "offset")
	command.Flags().IntVarP(&limit, "limit", "n", 50, "page size")
	command.Flags().SortFlags = false

	return command
}

func updateContentCmd() *cobra.Command {
	var itemID string
	var version int64
	var data string
	var replace bool
	var status string

	var required = []string{"item-id", "version"}

	command := &cobra.Command{
		Use:   "update",
		Short: "update a content item",
		Long: `Update a content item with the given id.

The update only applies when --version matches the current version of the item.
The data is merged into the stored data key by key, --replace overwrites it.
`,
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			payload, ok := rawJSON("data", data)
			if !ok {
				return
			}

			if replace {
				color.Magenta("replacing the data of: %s\n", itemID)
			}

			client, err := newClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			ctx, cancel := callContext()
			defer cancel()

			res, err := client.UpdateContent(ctx, &v1.UpdateContentRequest{
				ID:              itemID,
				ExpectedVersion: version,
				Data:            payload,
				Replace:         replace,
				Status:          optional(cmd, "status", status),
			})
			if err != nil {
				logrus.Error(err)
				return
			}

			printContent(res.Content)
		},
	}

	command.Flags().StringVarP(&itemID, "item-id", "i", "", "item id (required)")
	command.Flags().Int64VarP(&version, "version", "v", 0, "expected current version (required)")
	command.Flags().StringVarP(&data, "data", "d", "", "data patch as json")
	command.Flags().BoolVar(&replace, "replace", false, "replace the data instead of merging")
	command.Flags().StringVarP(&status, "status", "s", "", "new status")
	command.Flags().SortFlags = false

	return command
}

func deleteContentCmd() *cobra.Command {
	var itemID string

	var required = []string{"item-id"}

	command := &cobra.Command{
		Use:   "delete",
		Short: "delete a content item, its revisions are kept",
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

			_, err = client.DeleteContent(ctx, &v1.DeleteContentRequest{ID: itemID})
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("content deleted: %s", itemID)
		},
	}

	command.Flags().StringVarP(&itemID, "item-id", "i", "", "item id (required)")

	return command
}

func listRevisionsCmd() *cobra.Command {
	var itemID string

	var required = []string{"item-id"}

	command := &cobra.Command{
		Use:   "list",
		Short: "list the revisions of an item, newest first",
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

			res, err := client.ListRevisions(ctx, &v1.ListRevisionsRequest{ItemID: itemID})
			if err != nil {
				logrus.Error(err)
				return
			}

			rows := make([][]string, 0, len(res.Revisions))
			for _, r := range res.Revisions {
				rows = append(rows, []string{r.ID, itoa(r.Version), r.Status, r.CreatedBy, formatTime(&r.CreatedAt)})
			}
			renderTable([]string{"ID", "Version", "Status", "Created By", "Created"}, rows)
		},
	}

	command.Flags().StringVarP(&itemID, "item-id", "i", "", "item id (required)")

	return command
}

func getRevisionCmd() *cobra.Command {
	var revisionID string

	var required = []string{"revision-id"}

	command := &cobra.Command{
		Use:   "get",
		Short: "get a revision",
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

			res, err := client.GetRevision(ctx, &v1.GetRevisionRequest{ID: revisionID})
			if err != nil {
				logrus.Error(err)
				return
			}

			r := res.Revision
			printField("Item", r.ItemID)
			printField("Version", itoa(r.Version))
			printField("Status", r.Status)
			printJSON("Data", r.Data)
		},
	}

	command.Flags().StringVarP(&revisionID, "revision-id", "r", "", "revision id (required)")

	return command
}

func restoreRevisionCmd() *cobra.Command {
	var revisionID string
	var version int64

	var required = []string{"revision-id", "version"}

	command := &cobra.Command{
		Use:   "restore",
		Short: "restore an item to a revision",
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

			res, err := client.RestoreRevision(ctx, &v1.RestoreRevisionRequest{
				RevisionID:      revisionID,
				ExpectedVersion: version,
			})
			if err != nil {
				logrus.Error(err)
				return
			}

			printContent(res.Content)
		},
	}

	command.Flags().StringVarP(&revisionID, "revision-id", "r", "", "revision id (required)")
	command.Flags().Int64VarP(&version, "version", "v", 0, "expected current version of the item (required)")
	command.Flags().SortFlags = false

	return command
}

func setTranslationCmd() *cobra.Command {
	var itemID string
	var field string
	var language string
	var value string

	var required = []string{"item-id", "field", "lang"}

	command := &cobra.Command{
		Use:     "set",
		Short:   "set the translation of a field",
		Example: "cms translation set -i <item-id> -f title -l de -v Hallo",
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

			_, err = client.SetTranslation(ctx, &v1.SetTranslationRequest{
				ItemID:   itemID,
				Field:    field,
				Language: language,
				Value:    optional(cmd, "value", value),
			})
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("translation saved: %s/%s", language, field)
		},
	}

	command.Flags().StringVarP(&itemID, "item-id", "i", "", "item id (required)")
	command.Flags().StringVarP(&field, "field", "f", "", "field name (required)")
	command.Flags().StringVarP(&language, "lang", "l", "", "language (required)")
	command.Flags().StringVarP(&value, "value", "v", "", "translated value, omit for null")
	command.Flags().SortFlags = false

	return command
}

func listTranslationsCmd() *cobra.Command {
	var itemID string
	var language string

	var required = []string{"item-id"}

	command := &cobra.Command{
		Use:   "list",
		Short: "list the translations of an item",
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

			res, err := client.ListTranslations(ctx, &v1.ListTranslationsRequest{ItemID: itemID, Language: language})
			if err != nil {
				logrus.Error(err)
				return
			}

			rows := make([][]string, 0, len(res.Translations))
			for _, tr := range res.Translations {
				rows = append(rows, []string{tr.Language, tr.Field, deref(tr.Value)})
			}
			renderTable([]string{"Language", "Field", "Value"}, rows)
			printField("Count", strconv.Itoa(len(rows)))
		},
	}

	command.Flags().StringVarP(&itemID, "item-id", "i", "", "item id (required)")
	command.Flags().StringVarP(&language, "lang", "l", "", "only this language")

	return command
}

func deleteTranslationCmd() *cobra.Command {
	var itemID string
	var field string
	var language string

	var required = []string{"item-id", "field", "lang"}

	command := &cobra.Command{
		Use:   "delete",
		Short: "delete the translation of a field",
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

			_, err = client.DeleteTranslation(ctx, &v1.DeleteTranslationRequest{
				ItemID:   itemID,
				Field:    field,
				Language: language,
			})
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("translation deleted: %s/%s", language, field)
		},
	}

	command.Flags().StringVarP(&itemID, "item-id", "i", "", "item id (required)")
	command.Flags().StringVarP(&field, "field", "f", "", "field name (required)")
	command.Flags().StringVarP(&language, "lang", "l", "", "language (required)")
	command.Flags().SortFlags = false

	return command
}
