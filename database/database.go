// Package database - Handles all interaction with ArangoDB
package database

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/arangodb/go-driver/v2/connection"
	"github.com/cenkalti/backoff"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jdkaudit/jdkaudit-backend/model"
)

var logger = InitLogger() // setup the logger

// DBConnection is the structure that defined the database engine and collections
type DBConnection struct {
	Collections map[string]arangodb.Collection
	Database    arangodb.Database
}

// Define a struct to hold the index definition
type indexConfig struct {
	Collection string
	IdxName    string
	IdxField   string
}

var initDone = false          // has the data been initialized
var dbConnection DBConnection // database connection definition

// GetEnvDefault is a convenience function for handling env vars
func GetEnvDefault(key, defVal string) string {
	val, ex := os.LookupEnv(key) // get the env var
	if !ex {                     // not found return default
		return defVal
	}
	return val // return value for env var
}

// InitLogger sets up the Zap Logger to log to the console in a human readable format
func InitLogger() *zap.Logger {
	prodConfig := zap.NewProductionConfig()
	prodConfig.Encoding = "console"
	prodConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	prodConfig.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	logger, _ := prodConfig.Build()
	return logger
}

func dbConnectionConfig(endpoint connection.Endpoint, dbuser string, dbpass string) connection.HttpConfiguration {
	return connection.HttpConfiguration{
		Authentication: connection.NewBasicAuth(dbuser, dbpass),
		Endpoint:       endpoint,
		ContentType:    connection.ApplicationJSON,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true, // #nosec G402
			},
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 90 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}

// InitializeDatabase is the function for connecting to the db engine, creating the database and collections
func InitializeDatabase() DBConnection {
	const initialInterval = 10 * time.Second
	const maxInterval = 2 * time.Minute

	var db arangodb.Database
	var collections map[string]arangodb.Collection
	const databaseName = "jdkaudit"

	ctx := context.Background()

	if initDone {
		return dbConnection
	}

	False := false
	dbhost := GetEnvDefault("ARANGO_HOST", "localhost")
	dbport := GetEnvDefault("ARANGO_PORT", "8529")
	dbuser := GetEnvDefault("ARANGO_USER", "root")
	dbpass := GetEnvDefault("ARANGO_PASS", "mypassword")
	dburl := GetEnvDefault("ARANGO_URL", "http://"+dbhost+":"+dbport)

	var client arangodb.Client

	//
	// Database connection with backoff retry
	//

	// Configure exponential backoff
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = initialInterval
	bo.MaxInterval = maxInterval
	bo.MaxElapsedTime = 0 // Set to 0 for indefinite retries

	// Retry logic
	err := backoff.RetryNotify(func() error {
		fmt.Println("Attempting to connect to ArangoDB")
		endpoint := connection.NewRoundRobinEndpoints([]string{dburl})
		conn := connection.NewHttpConnection(dbConnectionConfig(endpoint, dbuser, dbpass))

		client = arangodb.NewClient(conn)

		// Ask the version of the server
		versionInfo, err := client.Version(context.Background())
		if err != nil {
			return err
		}

		logger.Sugar().Infof("Database has version '%s' and license '%s'\n", versionInfo.Version, versionInfo.License)
		return nil

	}, bo, func(err error, _ time.Duration) {
		fmt.Printf("Retrying connection to ArangoDB: %v\n", err)
	})

	if err != nil {
		logger.Sugar().Fatalf("Backoff Error %v\n", err)
	}

	//
	// Database creation
	//

	exists := false
	dblist, _ := client.Databases(ctx)

	for _, dbinfo := range dblist {
		if dbinfo.Name() == databaseName {
			exists = true
			break
		}
	}

	if exists {
		var options arangodb.GetDatabaseOptions
		if db, err = client.GetDatabase(ctx, databaseName, &options); err != nil {
			logger.Sugar().Fatalf("Failed to get Database: %v", err)
		}
	} else {
		if db, err = client.CreateDatabase(ctx, databaseName, nil); err != nil {
			logger.Sugar().Fatalf("Failed to create Database: %v", err)
		}
	}

	//
	// Collection creation for document storage
	//

	collections = make(map[string]arangodb.Collection)
	collectionNames := []string{"analysis"}

	for _, collectionName := range collectionNames {
		var col arangodb.Collection

		exists, _ = db.CollectionExists(ctx, collectionName)
		if exists {
			var options arangodb.GetCollectionOptions
			if col, err = db.GetCollection(ctx, collectionName, &options); err != nil {
				logger.Sugar().Fatalf("Failed to use collection: %v", err)
			}
		} else {
			if col, err = db.CreateCollection(ctx, collectionName, nil); err != nil {
				logger.Sugar().Fatalf("Failed to create collection: %v", err)
			}
		}

		collections[collectionName] = col
	}

	//
	// Index creation for the analysis collection
	//

	idxList := []indexConfig{
		{Collection: "analysis", IdxName: "analysis_vendor", IdxField: "version_identity.vendor.id"},
		{Collection: "analysis", IdxName: "analysis_major", IdxField: "version_identity.major"},
		{Collection: "analysis", IdxName: "analysis_era", IdxField: "version_identity.format_era"},
		{Collection: "analysis", IdxName: "analysis_license_flag", IdxField: "license.flag"},
		{Collection: "analysis", IdxName: "analysis_risk_category", IdxField: "risk.category"},
		{Collection: "analysis", IdxName: "analysis_confidence", IdxField: "parse_confidence"},
		{Collection: "analysis", IdxName: "analysis_analyzed_at", IdxField: "analyzed_at"},
	}

	for _, idx := range idxList {
		found := false

		if indexes, err := collections[idx.Collection].Indexes(ctx); err == nil {
			for _, index := range indexes {
				if idx.IdxName == index.Name {
					found = true
					break
				}
			}
		}

		if !found {
			indexOptions := arangodb.CreatePersistentIndexOptions{
				Unique: &False,
				Sparse: &False,
				Name:   idx.IdxName,
			}

			_, _, err = collections[idx.Collection].EnsurePersistentIndex(ctx, []string{idx.IdxField}, &indexOptions)
			if err != nil {
				logger.Sugar().Fatalln("Error creating index:", err)
			} else {
				logger.Sugar().Infof("Created index: %s on %s.%s", idx.IdxName, idx.Collection, idx.IdxField)
			}
		}
	}

	// Composite index for the vendor/major dashboard queries
	compositeName := "analysis_vendor_major"
	found := false
	if indexes, err := collections["analysis"].Indexes(ctx); err == nil {
		for _, index := range indexes {
			if compositeName == index.Name {
				found = true
				break
			}
		}
	}
	if !found {
		compositeOptions := arangodb.CreatePersistentIndexOptions{
			Unique: &False,
			Sparse: &False,
			Name:   compositeName,
		}
		_, _, err = collections["analysis"].EnsurePersistentIndex(ctx,
			[]string{"version_identity.vendor.id", "version_identity.major"},
			&compositeOptions)
		if err != nil {
			logger.Sugar().Fatalln("Error creating index:", err)
		} else {
			logger.Sugar().Infof("Created composite index: %s on analysis", compositeName)
		}
	}

	initDone = true

	dbConnection = DBConnection{
		Database:    db,
		Collections: collections,
	}

	logger.Sugar().Infof("Database initialization complete for %s", databaseName)

	return dbConnection
}

// SaveAnalysis persists a completed verdict and returns its document key.
func SaveAnalysis(ctx context.Context, db DBConnection, verdict *model.Verdict) (string, error) {
	meta, err := db.Collections["analysis"].CreateDocument(ctx, verdict)
	if err != nil {
		return "", fmt.Errorf("save analysis: %w", err)
	}
	return meta.Key, nil
}

// AnalysisFilter narrows FindAnalyses. Zero values are unconstrained.
type AnalysisFilter struct {
	Vendor       string
	RiskCategory string
	LicenseFlag  string
	RuntimePURL  string
	Limit        int
}

// FindAnalyses returns stored verdicts, newest first.
func FindAnalyses(ctx context.Context, db DBConnection, filter AnalysisFilter) ([]model.Verdict, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	query := `
		FOR a IN analysis
			FILTER @vendor == "" OR a.version_identity.vendor.id == @vendor
			FILTER @risk == "" OR a.risk.category == @risk
			FILTER @flag == "" OR a.license.flag == @flag
			FILTER @purl == "" OR a.runtime_purl == @purl
			SORT a.analyzed_at DESC
			LIMIT @limit
			RETURN a
	`
	cursor, err := db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{
			"vendor": filter.Vendor,
			"risk":   filter.RiskCategory,
			"flag":   filter.LicenseFlag,
			"purl":   filter.RuntimePURL,
			"limit":  limit,
		},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var results []model.Verdict
	for cursor.HasMore() {
		var verdict model.Verdict
		if _, err := cursor.ReadDocument(ctx, &verdict); err != nil {
			return nil, err
		}
		results = append(results, verdict)
	}

	return results, nil
}

// RuntimeCount is one aggregation bucket of stored verdicts sharing a
// runtime PURL.
type RuntimeCount struct {
	RuntimePURL string `json:"runtime_purl"`
	Count       int    `json:"count"`
}

// CountAnalysesByRuntime groups stored verdicts by their exact runtime
// PURL. Callers collapse the version component when they want one row
// per vendor and product.
func CountAnalysesByRuntime(ctx context.Context, db DBConnection) ([]RuntimeCount, error) {
	query := `
		FOR a IN analysis
			COLLECT purl = a.runtime_purl WITH COUNT INTO total
			SORT total DESC
			RETURN { runtime_purl: purl, count: total }
	`
	cursor, err := db.Database.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var counts []RuntimeCount
	for cursor.HasMore() {
		var rc RuntimeCount
		if _, err := cursor.ReadDocument(ctx, &rc); err != nil {
			return nil, err
		}
		counts = append(counts, rc)
	}

	return counts, nil
}
