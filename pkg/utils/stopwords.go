package utils

// airportStopwords are common 3-letter uppercase words that look like IATA
// airport codes but never are in booking emails.
var airportStopwords = map[string]bool{
	"THE": true, "AND": true, "FOR": true, "YOU": true, "ARE": true, "HAS": true,
	"WAS": true, "HIS": true, "HER": true, "OUR": true, "NOT": true, "BUT": true,
	"ALL": true, "CAN": true, "HAD": true, "ONE": true, "OUT": true, "DAY": true,
	"GET": true, "HIM": true, "HOW": true, "ITS": true, "MAY": true, "NEW": true,
	"NOW": true, "OLD": true, "SEE": true, "WAY": true, "WHO": true, "DID": true,
	"GOT": true, "LET": true, "SAY": true, "SHE": true, "TOO": true, "USE": true,
	"PNR": true, "ADD": true, "COM": true, "NON": true, "END": true, "OFF": true,
	"RUN": true, "SET": true, "TRY": true, "PUT": true, "BIG": true, "FEW": true,
	"FAR": true, "OWN": true, "SAT": true, "SIT": true, "TOP": true, "RED": true,
	"HOT": true, "CUT": true, "AGO": true, "YES": true, "YET": true, "RAN": true,
	"BED": true, "BOX": true, "BOY": true, "CAR": true, "DOG": true, "EAR": true,
	"EAT": true, "EYE": true, "FLY": true, "GAS": true, "GUN": true, "HIT": true,
	"JOB": true, "KEY": true, "LAY": true, "LEG": true, "LIE": true, "MAP": true,
	"MRS": true, "OIL": true, "PAY": true, "PER": true, "SIX": true, "SUN": true,
	"TEN": true, "WAR": true, "WET": true, "WIN": true, "WON": true, "AIR": true,
	"ACT": true, "AGE": true, "AID": true, "AIM": true, "ART": true, "ASK": true,
	"BAD": true, "BAR": true, "BIT": true, "BUY": true, "COP": true, "CRY": true,
	"DIE": true, "DIG": true, "DRY": true, "DUE": true, "ERA": true, "FAN": true,
	"FAT": true, "FEE": true, "FIT": true, "FUN": true, "GAP": true, "HAT": true,
	"ICE": true, "ILL": true, "JAM": true, "JET": true, "LAW": true, "LAP": true,
	"LOG": true, "LOT": true, "LOW": true, "MAN": true, "MEN": true, "MET": true,
	"MIX": true, "MOB": true, "MUD": true, "NET": true, "NOR": true, "NUT": true,
	"ODD": true, "PAN": true, "PEN": true, "PET": true, "PIN": true, "PIT": true,
	"POT": true, "RAW": true, "RIB": true, "RID": true, "ROB": true, "ROD": true,
	"ROW": true, "RUB": true, "SAD": true, "SIP": true, "SKI": true, "TAP": true,
	"TAX": true, "TIE": true, "TIN": true, "TIP": true, "TOE": true, "TON": true,
	"TOW": true, "TOY": true, "TUB": true, "VAN": true, "VIA": true, "VOW": true,
	"WEB": true, "WIG": true, "WIT": true, "WOE": true, "YEN": true, "ZOO": true,
	"FWD": true, "REF": true, "INR": true, "USD": true, "EUR": true, "SMS": true,
	"OTP": true, "URL": true, "PDF": true, "APP": true, "API": true, "RSS": true,
	"FAQ": true, "TBA": true, "TBD": true, "ETA": true, "ETD": true, "GMT": true,
	"IST": true, "EST": true, "PST": true, "CST": true, "UTC": true, "BAG": true,
	"DEP": true, "ARR": true, "FLT": true, "ONS": true, "UAE": true, "USA": true,
	"DGR": true, "VRM": true, "STD": true, "STA": true, "AVL": true, "CNF": true,
	"RAC": true, "GEN": true, "TAT": true, "OBC": true, "INF": true, "ADT": true,
	"CHD": true, "PAX": true, "SEQ": true, "QTY": true, "AMT": true, "SUB": true,
	"TTL": true, "MAX": true, "MIN": true, "AVG": true, "REQ": true, "RES": true,
	"TEL": true, "ORG": true, "GOV": true, "EDU": true, "MIL": true, "INT": true,
	"EXT": true, "SRC": true, "DST": true, "MSG": true, "ERR": true, "CMD": true,
	"SYS": true, "BUS": true, "CAB": true,
}

// pnrStopwords are words and word fragments the PNR patterns keep capturing
// instead of actual booking codes.
var pnrStopwords = map[string]bool{
	"NUMBER": true, "REFERENCE": true, "BOOKING": true, "CONFIRM": true,
	"DETAIL": true, "DETAILS": true, "FLIGHT": true, "STATUS": true,
	"CANCEL": true, "CHANGE": true, "UPDATE": true, "ERENCE": true,
	"RENCE": true, "UMBER": true, "ATION": true, "TICKET": true,
	"TRAVEL": true, "PLEASE": true, "REFUND": true, "AMOUNT": true,
	"TOTAL": true, "PRICE": true, "CHARGE": true, "EMAIL": true,
	"ISSUE": true, "BOARD": true, "CHECK": true, "PRINT": true,
	"VALID": true, "NUMERIC": true, "STRING": true, "FORMAT": true,
	"RETURN": true,
}
