package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

const gdpCSV = `DATAFLOW,LAST UPDATE,freq,Time frequency,unit,Unit of measure,na_item,National accounts indicator (ESA 2010),geo,Geopolitical entity (reporting),TIME_PERIOD,Time,OBS_VALUE,Observation value,OBS_FLAG
ESTAT:NAMA_10_GDP(1.0),01/01/24,A,Annual,CLV10_MEUR,"Chain linked volumes (2010), million euro",B1GQ,Gross domestic product at market prices,IT,Italy,1996,,1500000.5,,
ESTAT:NAMA_10_GDP(1.0),01/01/24,A,Annual,CLV10_MEUR,"Chain linked volumes (2010), million euro",B1GQ,Gross domestic product at market prices,IT,Italy,1995,,1480000,,
ESTAT:NAMA_10_GDP(1.0),01/01/24,A,Annual,CLV10_MEUR,"Chain linked volumes (2010), million euro",B1GQ,Gross domestic product at market prices,FR,France,1995,,1600000,,
`

const energyCSV = `country,year,iso_code,population,gdp,primary_energy_consumption,biofuel_share_elec
Italy,1994,ITA,56000000,,1800.5,
Italy,1995,ITA,56100000,,1850.25,
Italy,1996,ITA,56200000,,1860,
France,1995,FRA,59000000,,2700,
Poland,1995,POL,38000000,,1100,
Spain,2024,ESP,48000000,,1500,
Germany,2023,DEU,84000000,,,
`

const populationCSV = `DATAFLOW,LAST UPDATE,freq,Time frequency,unit,Unit of measure,age,Age class,sex,Sex,geo,Geopolitical entity (reporting),TIME_PERIOD,Time,OBS_VALUE,Observation value,OBS_FLAG
ESTAT:DEMO_PJAN(1.0),01/01/24,A,Annual,NR,Number,TOTAL,Total,T,Total,IT,Italy,1995,,56000000,,
ESTAT:DEMO_PJAN(1.0),01/01/24,A,Annual,NR,Number,TOTAL,Total,T,Total,IT,Italy,1996,,56100000,,
ESTAT:DEMO_PJAN(1.0),01/01/24,A,Annual,NR,Number,TOTAL,Total,T,Total,FR,France,1995,,59000000,,
`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}
