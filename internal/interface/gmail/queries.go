package gmail

// SearchQueries is the fixed set of Gmail search expressions the scanner
// runs. Each query runs independently; matching message IDs are unioned
// before any message is fetched.
var SearchQueries = []string{
	// Generic flight terms
	`"boarding pass"`,
	`"flight confirmation"`,
	`"flight itinerary"`,
	`"e-ticket"`,
	`"booking confirmation" flight`,
	`"trip confirmation" flight`,
	`"PNR"`,
	`"flight booking"`,
	// Active Indian airlines
	`from:indigo subject:itinerary`,
	`from:goindigo subject:itinerary`,
	`from:airindia`,
	`from:airindiaexpress`,
	`from:spicejet`,
	`from:akasaair`,
	`from:allianceair`,
	`from:starair`,
	`from:flybig`,
	// Defunct / renamed Indian airlines
	`from:jetairways`,
	`from:goair`,
	`from:gofirst`,
	`from:airasiago`,
	`from:airasia subject:booking`,
	`from:airdeccan`,
	`from:airsahara`,
	`from:kingfisherairlines`,
	`from:flygokingfisher`,
	`from:airvistara`,
	`from:vfrpl`,
	`from:aircosta`,
	`from:airpegasus`,
	`from:trujet`,
	`from:paramountairways`,
	`from:mdlrairlines`,
	`from:zoomair`,
	// Booking platforms (flight-specific)
	`from:makemytrip flight`,
	`from:ixigo flight`,
	`from:cleartrip flight`,
	`from:yatra flight`,
	`from:easemytrip flight`,
	`from:goibibo flight`,
	`from:happyeasygo flight`,
}
