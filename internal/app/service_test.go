package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/roster/internal/adapters/dataset"
	"github.com/okian/roster/internal/adapters/source"
	service "github.com/okian/roster/internal/app"
	"github.com/okian/roster/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

func TestService_Build(t *testing.T) {
	convey.Convey("Given a raw dataset with duplicates and mixed columns", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		rawPath := filepath.Join(dir, "raw.csv")
		outPath := filepath.Join(dir, "players.csv")

		raw := "short_name,overall_rating,player_positions\n" +
			"L. Messi,91,\"RW, CF\"\n" +
			"L. Messi,93,CF\n" +
			"K. Mbappé,91,ST\n" +
			",50,GK\n" +
			"Odd Rating,abc,CB\n"
		writeFile(t, rawPath, raw)

		svc := service.New(
			service.WithSource(source.NewLocal(rawPath)),
			service.WithOutputPath(outPath),
		)

		convey.Convey("When building the ranked dataset", func() {
			err := svc.Build(ctx)

			convey.Convey("Then duplicates merge keeping the highest rating", func() {
				convey.So(err, convey.ShouldBeNil)

				doc, err := dataset.Read(outPath)
				convey.So(err, convey.ShouldBeNil)
				convey.So(doc.Header, convey.ShouldResemble, []string{"name", "rating", "position"})
				convey.So(doc.Rows, convey.ShouldHaveLength, 3)

				convey.So(doc.Rows[0]["name"], convey.ShouldEqual, "L. Messi")
				convey.So(doc.Rows[0]["rating"], convey.ShouldEqual, "93")
				convey.So(doc.Rows[1]["name"], convey.ShouldEqual, "K. Mbappé")
				convey.So(doc.Rows[1]["rating"], convey.ShouldEqual, "91")
			})

			convey.Convey("Then nameless rows are skipped and bad ratings blanked", func() {
				convey.So(err, convey.ShouldBeNil)

				doc, err := dataset.Read(outPath)
				convey.So(err, convey.ShouldBeNil)

				for _, row := range doc.Rows {
					convey.So(row["name"], convey.ShouldNotBeEmpty)
				}
				convey.So(doc.Rows[2]["name"], convey.ShouldEqual, "Odd Rating")
				convey.So(doc.Rows[2]["rating"], convey.ShouldEqual, "")
				convey.So(doc.Rows[2]["position"], convey.ShouldEqual, "CB")
			})
		})

		convey.Convey("When building with a lower limit", func() {
			small := service.New(
				service.WithSource(source.NewLocal(rawPath)),
				service.WithOutputPath(outPath),
				service.WithLimit(1),
			)
			err := small.Build(ctx)

			convey.Convey("Then only the top record is kept", func() {
				convey.So(err, convey.ShouldBeNil)

				doc, err := dataset.Read(outPath)
				convey.So(err, convey.ShouldBeNil)
				convey.So(doc.Rows, convey.ShouldHaveLength, 1)
				convey.So(doc.Rows[0]["name"], convey.ShouldEqual, "L. Messi")
			})
		})
	})

	convey.Convey("Given a zero-byte raw dataset", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		rawPath := filepath.Join(dir, "raw.csv")
		outPath := filepath.Join(dir, "players.csv")
		writeFile(t, rawPath, "")

		svc := service.New(
			service.WithSource(source.NewLocal(rawPath)),
			service.WithOutputPath(outPath),
		)

		convey.Convey("When building", func() {
			err := svc.Build(ctx)

			convey.Convey("Then a header-only ranked output is written", func() {
				convey.So(err, convey.ShouldBeNil)

				doc, err := dataset.Read(outPath)
				convey.So(err, convey.ShouldBeNil)
				convey.So(doc.Header, convey.ShouldResemble, []string{"name", "rating", "position"})
				convey.So(doc.Rows, convey.ShouldBeEmpty)
			})
		})
	})

	convey.Convey("Given a missing raw dataset", t, func() {
		ctx := context.Background()
		dir := t.TempDir()

		svc := service.New(
			service.WithSource(source.NewLocal(filepath.Join(dir, "absent.csv"))),
			service.WithOutputPath(filepath.Join(dir, "players.csv")),
		)

		convey.Convey("When building", func() {
			err := svc.Build(ctx)

			convey.Convey("Then it should fail with the source error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, source.ErrMissingInput), convey.ShouldBeTrue)
			})
		})
	})
}

func TestService_Enrich(t *testing.T) {
	convey.Convey("Given a ranked dataset awaiting enrichment", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		outPath := filepath.Join(dir, "players.csv")

		writeFile(t, outPath,
			"name,rating,position\n"+
				"L. Messi,93,RW\n"+
				"João Félix,84,ST\n")

		svc := service.New(service.WithOutputPath(outPath))

		convey.Convey("When enriching", func() {
			err := svc.Enrich(ctx)

			convey.Convey("Then both URL columns are appended and filled", func() {
				convey.So(err, convey.ShouldBeNil)

				doc, err := dataset.Read(outPath)
				convey.So(err, convey.ShouldBeNil)
				convey.So(doc.Header, convey.ShouldResemble,
					[]string{"name", "rating", "position", "imageUrl", "futbinUrl"})

				convey.So(doc.Rows[0]["imageUrl"], convey.ShouldEqual,
					"https://ui-avatars.com/api/?name=L.+Messi&rounded=true&background=random&size=256&format=png")
				convey.So(doc.Rows[0]["futbinUrl"], convey.ShouldEqual,
					"https://www.futbin.com/search?query=L.+Messi")
				convey.So(doc.Rows[1]["imageUrl"], convey.ShouldContainSubstring, "Jo%C3%A3o+F%C3%A9lix")
			})
		})

		convey.Convey("When enriching a dataset that already has URLs", func() {
			writeFile(t, outPath,
				"name,rating,position,imageUrl,futbinUrl\n"+
					"L. Messi,93,RW,https://example.com/custom.png,\n")

			err := svc.Enrich(ctx)

			convey.Convey("Then existing values survive and only blanks are filled", func() {
				convey.So(err, convey.ShouldBeNil)

				doc, err := dataset.Read(outPath)
				convey.So(err, convey.ShouldBeNil)
				convey.So(doc.Rows[0]["imageUrl"], convey.ShouldEqual, "https://example.com/custom.png")
				convey.So(doc.Rows[0]["futbinUrl"], convey.ShouldEqual,
					"https://www.futbin.com/search?query=L.+Messi")
			})
		})

		convey.Convey("When enriching twice", func() {
			err1 := svc.Enrich(ctx)
			first := readFile(t, outPath)
			err2 := svc.Enrich(ctx)
			second := readFile(t, outPath)

			convey.Convey("Then the second pass changes nothing", func() {
				convey.So(err1, convey.ShouldBeNil)
				convey.So(err2, convey.ShouldBeNil)
				convey.So(second, convey.ShouldEqual, first)
			})
		})
	})

	convey.Convey("Given a dataset with a column-split row", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		outPath := filepath.Join(dir, "players.csv")

		// An upstream export jammed a whole record into the first cell.
		writeFile(t, outPath,
			"id,name,rating,position\n"+
				"\"Robert Lewandowski, 89, ST\",,,\n"+
				"10,L. Messi,93,RW\n")

		convey.Convey("When enriching with repair enabled", func() {
			svc := service.New(service.WithOutputPath(outPath))
			err := svc.Enrich(ctx)

			convey.Convey("Then the broken row is rebuilt and enriched", func() {
				convey.So(err, convey.ShouldBeNil)

				doc, err := dataset.Read(outPath)
				convey.So(err, convey.ShouldBeNil)
				convey.So(doc.Rows, convey.ShouldHaveLength, 2)

				convey.So(doc.Rows[0]["name"], convey.ShouldEqual, "Robert Lewandowski")
				convey.So(doc.Rows[0]["rating"], convey.ShouldEqual, "89")
				convey.So(doc.Rows[0]["position"], convey.ShouldEqual, "ST")
				convey.So(doc.Rows[0]["futbinUrl"], convey.ShouldEqual,
					"https://www.futbin.com/search?query=Robert+Lewandowski")
				convey.So(doc.Rows[1]["name"], convey.ShouldEqual, "L. Messi")
			})
		})

		convey.Convey("When enriching with repair disabled", func() {
			svc := service.New(
				service.WithOutputPath(outPath),
				service.WithRepair(false),
			)
			err := svc.Enrich(ctx)

			convey.Convey("Then the broken row is skipped, not rebuilt", func() {
				convey.So(err, convey.ShouldBeNil)

				doc, err := dataset.Read(outPath)
				convey.So(err, convey.ShouldBeNil)
				convey.So(doc.Rows[0]["name"], convey.ShouldEqual, "")
				convey.So(doc.Rows[0]["imageUrl"], convey.ShouldEqual, "")
				convey.So(doc.Rows[1]["imageUrl"], convey.ShouldContainSubstring, "L.+Messi")
			})
		})
	})

	convey.Convey("Given no dataset on disk", t, func() {
		ctx := context.Background()
		dir := t.TempDir()

		svc := service.New(service.WithOutputPath(filepath.Join(dir, "players.csv")))

		convey.Convey("When enriching", func() {
			err := svc.Enrich(ctx)

			convey.Convey("Then it should surface the read failure", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestService_Run(t *testing.T) {
	convey.Convey("Given a raw dataset and a full pipeline run", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		rawPath := filepath.Join(dir, "raw.csv")
		outPath := filepath.Join(dir, "players.csv")

		writeFile(t, rawPath,
			"name,overall,position\n"+
				"Erling Haaland,91,ST\n"+
				"Jude Bellingham,90,CM\n")

		svc := service.New(
			service.WithSource(source.NewLocal(rawPath)),
			service.WithOutputPath(outPath),
		)

		convey.Convey("When running build and enrich end to end", func() {
			err := svc.Run(ctx)

			convey.Convey("Then the output is ranked and fully enriched", func() {
				convey.So(err, convey.ShouldBeNil)

				doc, err := dataset.Read(outPath)
				convey.So(err, convey.ShouldBeNil)
				convey.So(doc.Header, convey.ShouldResemble,
					[]string{"name", "rating", "position", "imageUrl", "futbinUrl"})
				convey.So(doc.Rows, convey.ShouldHaveLength, 2)

				convey.So(doc.Rows[0]["name"], convey.ShouldEqual, "Erling Haaland")
				convey.So(doc.Rows[0]["imageUrl"], convey.ShouldContainSubstring, "Erling+Haaland")
				convey.So(doc.Rows[1]["name"], convey.ShouldEqual, "Jude Bellingham")
				convey.So(doc.Rows[1]["futbinUrl"], convey.ShouldEqual,
					"https://www.futbin.com/search?query=Jude+Bellingham")
			})
		})
	})
}
