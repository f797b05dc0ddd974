package cmd

import (
	"strconv"

	v1 "github.com/emrgen/cms/apis/v1"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var collectionCmd = &cobra.Command{
	Use:   "collection",
	Short: "collection commands",
}

var fieldCmd = &cobra.Command{
	Use:   "field",
	Short: "field commands",
}

var relationCmd = &cobra.Command{
	Use:   "relation",
	Short: "relation commands",
}

func init() {
	rootCmd.AddCommand(collectionCmd)
	collectionCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	collectionCmd.AddCommand(createCollectionCmd())
	collectionCmd.AddCommand(getCollectionCmd())
	collectionCmd.AddCommand(listCollectionsCmd())
	collectionCmd.AddCommand(resolveSchemaCmd())

	rootCmd.AddCommand(fieldCmd)
	fieldCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	fieldCmd.AddCommand(createFieldCmd())

	rootCmd.AddCommand(relationCmd)
	relationCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	relationCmd.AddCommand(createRelationCmd())
}

func createCollectionCmd() *cobra.Command {
	var name string
	var hidden bool
	var singleton bool
	var note string

	var required = []string{"name"}

	command := &cobra.Command{
		Use:     "create",
		Short:   "define a collection",
		Example: "cms collection create -n article",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			noteData, ok := rawJSON("note", note)
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

			res, err := client.DefineCollection(ctx, &v1.DefineCollectionRequest{
				Name:      name,
				Hidden:    hidden,
				Singleton: singleton,
				Note:      noteData,
			})
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("collection created: %s", res.Collection.Name)
		},
	}

	command.Flags().StringVarP(&name, "name", "n", "", "collection name (required)")
	command.Flags().BoolVar(&hidden, "hidden", false, "hide the collection from listings")
	command.Flags().BoolVar(&singleton, "singleton", false, "allow a single item only")
	command.Flags().StringVar(&note, "note", "", "note as json")
	command.Flags().SortFlags = false

	return command
}

func getCollectionCmd() *cobra.Command {
	var name string

	var required = []string{"name"}

	command := &cobra.Command{
		Use:   "get",
		Short: "get a collection",
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

			res, err := client.GetCollection(ctx, &v1.GetCollectionRequest{Name: name})
			if err != nil {
				logrus.Error(err)
				return
			}

			printCollections([]*v1.Collection{res.Collection})
		},
	}

	command.Flags().StringVarP(&name, "name", "n", "", "collection name (required)")

	return command
}

func listCollectionsCmd() *cobra.Command {
	var all bool

	command := &cobra.Command{
		Use:   "list",
		Short: "list collections",
		Run: func(cmd *cobra.Command, args []string) {
			client, err := newClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			ctx, cancel := callContext()
			defer cancel()

			res, err := client.ListCollections(ctx, &v1.ListCollectionsRequest{IncludeHidden: all})
			if err != nil {
				logrus.Error(err)
				return
			}

			printCollections(res.Collections)
		},
	}

	command.Flags().BoolVarP(&all, "all", "a", false, "include hidden collections")

	return command
}

func printCollections(collections []*v1.Collection) {
	rows := make([][]string, 0, len(collections))
	for _, c := range collections {
		rows = append(rows, []string{c.Name, strconv.FormatBool(c.Hidden), strconv.FormatBool(c.Singleton), formatTime(&c.CreatedAt)})
	}
	renderTable([]string{"Name", "Hidden", "Singleton", "Created"}, rows)
}

func resolveSchemaCmd() *cobra.Command {
	var name string

	var required = []string{"name"}

	command := &cobra.Command{
		Use:   "schema",
		Short: "show the fields and relations of a collection",
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

			res, err := client.ResolveSchema(ctx, &v1.ResolveSchemaRequest{Collection: name})
			if err != nil {
				logrus.Error(err)
				return
			}

			fields := make([][]string, 0, len(res.Fields))
			for _, f := range res.Fields {
				fields = append(fields, []string{f.Field, f.Type})
			}
			renderTable([]string{"Field", "Type"}, fields)

			relations := make([][]string, 0, len(res.Relations))
			for _, r := range res.Relations {
				relations = append(relations, []string{r.Type, r.ManyCollection + "." + r.FieldMany, r.OneCollection + "." + r.FieldOne, deref(r.Junction)})
			}
			renderTable([]string{"Type", "Many", "One", "Junction"}, relations)
		},
	}

	command.Flags().StringVarP(&name, "name", "n", "", "collection name (required)")

	return command
}

func createFieldCmd() *cobra.Command {
	var collection string
	var field string
	var fieldType string
	var options string

	var required = []string{"collection", "field", "type"}

	command := &cobra.Command{
		Use:     "create",
		Short:   "define a field",
		Example: "cms field create -c article -f title -t string",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			optionsData, ok := rawJSON("options", options)
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

			res, err := client.DefineField(ctx, &v1.DefineFieldRequest{
				Collection: collection,
				Field:      field,
				Type:       fieldType,
				Options:    optionsData,
			})
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("field created: %s.%s (%s)", res.Field.Collection, res.Field.Field, res.Field.Type)
		},
	}

	command.Flags().StringVarP(&collection, "collection", "c", "", "collection name (required)")
	command.Flags().StringVarP(&field, "field", "f", "", "field name (required)")
	command.Flags().StringVarP(&fieldType, "type", "t", "", "field type (required)")
	command.Flags().StringVarP(&options, "options", "o", "", "options as json")
	command.Flags().SortFlags = false

	return command
}

func createRelationCmd() *cobra.Command {
	var manyCollection string
	var oneCollection string
	var fieldMany string
	var fieldOne string
	var relationType string
	var junction string

	var required = []string{"many", "one", "field-many", "field-one", "type"}

	command := &cobra.Command{
		Use:     "create",
		Short:   "define a relation",
		Example: "cms relation create --many article --field-many author --one author --field-one articles -t m2o",
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

			res, err := client.DefineRelation(ctx, &v1.DefineRelationRequest{
				ManyCollection: manyCollection,
				OneCollection:  oneCollection,
				FieldMany:      fieldMany,
				FieldOne:       fieldOne,
				Type:           relationType,
				Junction:       optional(cmd, "junction", junction),
			})
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("relation created: %s", res.Relation.ID)
		},
	}

	command.Flags().StringVar(&manyCollection, "many", "", "many side collection (required)")
	command.Flags().StringVar(&fieldMany, "field-many", "", "many side field (required)")
	command.Flags().StringVar(&oneCollection, "one", "", "one side collection (required)")
	command.Flags().StringVar(&fieldOne, "field-one", "", "one side field (required)")
	command.Flags().StringVarP(&relationType, "type", "t", "", "m2o, o2m, m2m or o2o (required)")
	command.Flags().StringVarP(&junction, "junction", "j", "", "junction collection of a m2m relation")
	command.Flags().SortFlags = false

	return command
}
