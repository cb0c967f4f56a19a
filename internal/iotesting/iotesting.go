// Package iotesting provides shared test utilities and fixtures.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/virotaxa/pkg/config"
	"github.com/gnames/virotaxa/pkg/vhdb"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "virotaxa_test"
)

// SampleVHDB is a five-row VHDB table: HIV-1, Influenza A, a siphovirus
// contig, Zika virus (all from humans) and a bat coronavirus.
const SampleVHDB = "" +
	"virus_tax_id\tvirus_name\tvirus_lineage\trefseq_id\tKEGG_GENOME\tKEGG_DISEASE\tDISEASE\thost_tax_id\thost_name\thost_lineage\tpmid\tevidence\tsample_type\tsource_organism\n" +
	"11676\tHuman immunodeficiency virus 1\tViruses; Riboviria; Pararnavirae; Artverviricota; Revtraviricetes; Ortervirales; Retroviridae; Orthoretrovirinae; Lentivirus\tNC_001802.1\t\t\tAIDS\t9606\tHomo sapiens\tEukaryota; Metazoa; Chordata; Vertebrata; Mammalia; Primates; Hominidae; Homo\t12345678\tLiterature\t\t\n" +
	"11320\tInfluenza A virus\tViruses; Riboviria; Orthornavirae; Negarnaviricota; Polyploviricotina; Insthoviricetes; Articulavirales; Orthomyxoviridae\tNC_002016.1\t\t\tInfluenza\t9606\tHomo sapiens\tEukaryota; Metazoa; Chordata; Vertebrata; Mammalia; Primates; Hominidae; Homo\t\tRefSeq\t\t\n" +
	"1518022\tSiphovirus contig89\tViruses; Duplodnaviria; Caudoviricetes; unclassified Caudoviricetes\tNC_999999.1\t\t\t\t9606\tHomo sapiens\tEukaryota; Metazoa; Chordata; Vertebrata; Mammalia; Primates; Hominidae; Homo\t\tRefSeq\t\t\n" +
	"12637\tZika virus\tViruses; Riboviria; Orthornavirae; Kitrinoviricota; Flasuviricetes; Amarillovirales; Flaviviridae; Flavivirus\tNC_012532.1\t\t\tZika fever\t9606\tHomo sapiens\tEukaryota; Metazoa; Chordata; Vertebrata; Mammalia; Primates; Hominidae; Homo\t\tLiterature\t\t\n" +
	"999999\tBat coronavirus HKU9\tViruses; Riboviria; Orthornavirae; Pisuviricota; Pisoniviricetes; Nidovirales; Cornidovirineae; Coronaviridae; Orthocoronavirinae; Betacoronavirus\tNC_009021.1\t\t\t\t9397\tPteropus alecto\tEukaryota; Metazoa; Chordata; Vertebrata; Mammalia; Chiroptera; Pteropodidae; Pteropus\t\tRefSeq\t\t\n"

const humanLineage = "Eukaryota; Metazoa; Chordata; Vertebrata; Mammalia; " +
	"Primates; Hominidae; Homo"

// SampleRelationships returns rows of SampleVHDB as parsed values.
func SampleRelationships() []vhdb.Relationship {
	return []vhdb.Relationship{
		{
			VirusTaxID: 11676,
			VirusName:  "Human immunodeficiency virus 1",
			VirusLineage: "Viruses; Riboviria; Pararnavirae; Artverviricota; " +
				"Revtraviricetes; Ortervirales; Retroviridae; " +
				"Orthoretrovirinae; Lentivirus",
			RefSeqID:    "NC_001802.1",
			Disease:     "AIDS",
			HostTaxID:   9606,
			HostName:    "Homo sapiens",
			HostLineage: humanLineage,
			PMID:        "12345678",
			Evidence:    "Literature",
		},
		{
			VirusTaxID: 11320,
			VirusName:  "Influenza A virus",
			VirusLineage: "Viruses; Riboviria; Orthornavirae; Negarnaviricota; " +
				"Polyploviricotina; Insthoviricetes; Articulavirales; " +
				"Orthomyxoviridae",
			RefSeqID:    "NC_002016.1",
			Disease:     "Influenza",
			HostTaxID:   9606,
			HostName:    "Homo sapiens",
			HostLineage: humanLineage,
			Evidence:    "RefSeq",
		},
		{
			VirusTaxID: 1518022,
			VirusName:  "Siphovirus contig89",
			VirusLineage: "Viruses; Duplodnaviria; Caudoviricetes; " +
				"unclassified Caudoviricetes",
			RefSeqID:    "NC_999999.1",
			HostTaxID:   9606,
			HostName:    "Homo sapiens",
			HostLineage: humanLineage,
			Evidence:    "RefSeq",
		},
		{
			VirusTaxID: 12637,
			VirusName:  "Zika virus",
			VirusLineage: "Viruses; Riboviria; Orthornavirae; Kitrinoviricota; " +
				"Flasuviricetes; Amarillovirales; Flaviviridae; Flavivirus",
			RefSeqID:    "NC_012532.1",
			Disease:     "Zika fever",
			HostTaxID:   9606,
			HostName:    "Homo sapiens",
			HostLineage: humanLineage,
			Evidence:    "Literature",
		},
		{
			VirusTaxID: 999999,
			VirusName:  "Bat coronavirus HKU9",
			VirusLineage: "Viruses; Riboviria; Orthornavirae; Pisuviricota; " +
				"Pisoniviricetes; Nidovirales; Cornidovirineae; " +
				"Coronaviridae; Orthocoronavirinae; Betacoronavirus",
			RefSeqID:  "NC_009021.1",
			HostTaxID: 9397,
			HostName:  "Pteropus alecto",
			HostLineage: "Eukaryota; Metazoa; Chordata; Vertebrata; " +
				"Mammalia; Chiroptera; Pteropodidae; Pteropus",
			Evidence: "RefSeq",
		},
	}
}

// WriteSampleVHDB writes SampleVHDB to dir and returns the file path.
func WriteSampleVHDB(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "vhdb.tsv")
	if err := os.WriteFile(path, []byte(SampleVHDB), 0644); err != nil {
		t.Fatalf("Failed to write sample VHDB: %v", err)
	}
	return path
}

// GetTestConfig returns a configuration suitable for integration tests.
// Database settings can be changed with VIROTAXA_DATABASE_* variables,
// the database name is always TestDatabaseName for safety.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.GetTestConfig(t)
//	    // ... use cfg for database operations
//	}
func GetTestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.New()
	var opts []config.Option
	if s := os.Getenv("VIROTAXA_DATABASE_HOST"); s != "" {
		opts = append(opts, config.OptDatabaseHost(s))
	}
	if s := os.Getenv("VIROTAXA_DATABASE_USER"); s != "" {
		opts = append(opts, config.OptDatabaseUser(s))
	}
	if s := os.Getenv("VIROTAXA_DATABASE_PASSWORD"); s != "" {
		opts = append(opts, config.OptDatabasePassword(s))
	}
	opts = append(opts,
		config.OptDatabaseDatabase(TestDatabaseName),
		config.OptHomeDir(t.TempDir()),
	)
	cfg.Update(opts)
	return cfg
}
