// Package knowledge carries the static grounding corpus for the
// financial database (schema DDL, table documentation, and curated
// question/SQL pairs) together with the seeding routine that loads it
// into the knowledge store. This is data, not logic; it is loaded once
// by the trainer, outside the request-serving path.
package knowledge

import "sqlgate/internal/domain/entity"

// Corpus bundles the three record kinds the knowledge store indexes.
type Corpus struct {
	DDL      []entity.DDLEntry
	Docs     []entity.DocEntry
	Examples []entity.QuestionSQL
}

// Financial returns the grounding corpus for the financial database.
// Returned fresh on every call; callers own the slices.
func Financial() Corpus {
	return Corpus{
		DDL:      financialDDL(),
		Docs:     financialDocs(),
		Examples: financialExamples(),
	}
}

func financialDDL() []entity.DDLEntry {
	return []entity.DDLEntry{
		{Statement: "CREATE TABLE `account` (\n  `account_id` INT,\n  `district_id` INT,\n  `frequency` TEXT,\n  `date` DATE\n);"},
		{Statement: "CREATE TABLE `card` (\n  `card_id` INT,\n  `disp_id` INT,\n  `type` TEXT,\n  `issued` DATE\n);"},
		{Statement: "CREATE TABLE `client` (\n  `client_id` INT,\n  `gender` TEXT,\n  `birth_date` DATE,\n  `district_id` INT\n);"},
		{Statement: "CREATE TABLE `disp` (\n  `disp_id` INT,\n  `client_id` INT,\n  `account_id` INT,\n  `type` TEXT\n);"},
		{Statement: "CREATE TABLE `district` (\n  `district_id` INT,\n  `A2` TEXT,\n  `A3` TEXT,\n  `A4` TEXT,\n  `A5` TEXT,\n  `A6` TEXT,\n  `A7` TEXT,\n  `A8` INT,\n  `A9` INT,\n  `A10` REAL,\n  `A11` INT,\n  `A12` REAL,\n  `A13` REAL,\n  `A14` INT,\n  `A15` INT,\n  `A16` INT\n);"},
		{Statement: "CREATE TABLE `loan` (\n  `loan_id` INT,\n  `account_id` INT,\n  `date` DATE,\n  `amount` INT,\n  `duration` INT,\n  `payments` REAL,\n  `status` TEXT\n);"},
		{Statement: "CREATE TABLE `order` (\n  `order_id` INT,\n  `account_id` INT,\n  `bank_to` TEXT,\n  `account_to` INT,\n  `amount` REAL,\n  `k_symbol` TEXT\n);"},
		{Statement: "CREATE TABLE `trans` (\n  `trans_id` INT,\n  `account_id` INT,\n  `date` DATE,\n  `type` TEXT,\n  `operation` TEXT,\n  `amount` INT,\n  `balance` INT,\n  `k_symbol` TEXT,\n  `bank` TEXT,\n  `account` INT\n);"},
	}
}

func financialDocs() []entity.DocEntry {
	return []entity.DocEntry{
		{Text: "Table `account`: Contains information about each account, including its creation date, location, and frequency of statement issuance. This table holds the primary details for each bank account.\nColumns:\n- `account_id`: The unique ID of the account.\n- `district_id`: The ID for the location of the branch, foreign key to the district table.\n- `frequency`: Frequency of statement issuance. Values are: 'POPLATEK MESICNE' (monthly issuance), 'POPLATEK TYDNE' (weekly issuance), 'POPLATEK PO OBRATU' (issuance after transaction).\n- `date`: The creation date of the account in YYMMDD format."},
		{Text: "Table `card`: Details about credit cards issued to clients. This table lists all credit cards associated with dispositions.\nColumns:\n- `card_id`: The unique ID number of the credit card.\n- `disp_id`: The disposition ID, foreign key to the disp table.\n- `type`: The type of credit card. Values are: 'junior' (junior class), 'classic' (standard class), 'gold' (high-level class).\n- `issued`: The date when the credit card was issued in YYMMDD format."},
		{Text: "Table `client`: Contains personal demographic information about the bank's clients.\nColumns:\n- `client_id`: The unique ID number for the client.\n- `gender`: The gender of the client. Values are: 'F' (female), 'M' (male).\n- `birth_date`: The birth date of the client in YYMMDD format.\n- `district_id`: The ID for the location of the client's branch, foreign key to the district table."},
		{Text: "Table `disp`: Links clients to their accounts and specifies their rights. This table acts as a mapping between clients and accounts.\nColumns:\n- `disp_id`: A unique ID for the disposition record.\n- `client_id`: The ID of the client, foreign key to the client table.\n- `account_id`: The ID of the account, foreign key to the account table.\n- `type`: The type of disposition or role of the client for that account. Values are: 'OWNER' (the account owner), 'DISPONENT' (a user with rights to the account)."},
		{Text: "Table `district`: Provides demographic and economic statistics for different geographic districts.\nColumns:\n- `district_id`: The unique ID for the district.\n- `A2`: The name of the district (district_name).\n- `A3`: The region the district belongs to.\n- `A4`: The number of inhabitants in the district.\n- `A5`: Number of municipalities with inhabitants < 499.\n- `A6`: Number of municipalities with inhabitants 500-1999.\n- `A7`: Number of municipalities with inhabitants 2000-9999.\n- `A8`: Number of municipalities with inhabitants > 10000.\n- `A9`: The number of cities.\n- `A10`: The ratio of urban inhabitants.\n- `A11`: The average salary in the district.\n- `A12`: The unemployment rate in 1995.\n- `A13`: The unemployment rate in 1996.\n- `A14`: The number of entrepreneurs per 1000 inhabitants.\n- `A15`: The number of committed crimes in 1995.\n- `A16`: The number of committed crimes in 1996."},
		{Text: "Table `loan`: Contains information about approved loans for accounts.\nColumns:\n- `loan_id`: The unique ID for the loan.\n- `account_id`: The ID of the account the loan is associated with, foreign key to the account table.\n- `date`: The date the loan was approved in YYMMDD format.\n- `amount`: The approved loan amount in USD.\n- `duration`: The loan duration in months.\n- `payments`: The monthly payment amount in USD.\n- `status`: The repayment status of the loan. Values are: 'A' (contract finished, no problems), 'B' (contract finished, loan not paid), 'C' (running contract, OK so far), 'D' (running contract, client in debt)."},
		{Text: "Table `order`: Contains information about permanent (standing) orders from accounts.\nColumns:\n- `order_id`: The unique ID for the standing order.\n- `account_id`: The ID of the account the order is from, foreign key to the account table.\n- `bank_to`: The bank of the recipient.\n- `account_to`: The account number of the recipient.\n- `amount`: The debited amount.\n- `k_symbol`: A characterization of the payment's purpose. Values are: 'POJISTNE' (insurance payment), 'SIPO' (household payment), 'LEASING' (leasing payment), 'UVER' (loan payment)."},
		{Text: "Table `trans`: Records all transactions for accounts, providing a detailed log.\nColumns:\n- `trans_id`: The unique ID for the transaction.\n- `account_id`: The ID of the account for the transaction, foreign key to the account table.\n- `date`: The date of the transaction in YYMMDD format.\n- `type`: The type of transaction. Values are: 'PRIJEM' (credit/income), 'VYDAJ' (withdrawal/expenditure).\n- `operation`: The mode of the transaction. Values include: 'VYBER KARTOU' (credit card withdrawal), 'VKLAD' (credit in cash), 'PREVOD Z UCTU' (collection from another bank), 'VYBER' (withdrawal in cash), 'PREVOD NA UCET' (remittance to another bank).\n- `amount`: The amount of money in USD for the transaction.\n- `balance`: The account balance after the transaction in USD.\n- `k_symbol`: A characterization of the transaction's purpose. Values include: 'POJISTNE' (insurance payment), 'SLUZBY' (payment for a service), 'UROK' (interest credited), 'SANKC. UROK' (sanction interest for negative balance), 'SIPO' (household payment), 'DUCHOD' (pension), 'UVER' (loan payment).\n- `bank`: The bank of the transaction partner.\n- `account`: The account of the transaction partner."},
	}
}

func financialExamples() []entity.QuestionSQL {
	return []entity.QuestionSQL{
		// Simple queries
		{
			Question: "How many total clients does the bank have?",
			SQL:      "SELECT COUNT(client_id) FROM client;",
		},
		{
			Question: "What are the different types of credit cards the bank offers?",
			SQL:      "SELECT DISTINCT type FROM card;",
		},
		{
			Question: "Show me the total number of accounts for each statement frequency.",
			SQL:      "SELECT frequency, COUNT(account_id) as num_accounts FROM account GROUP BY frequency;",
		},
		{
			Question: "Which 10 districts have the highest average salary?",
			SQL:      "SELECT A2 as district_name, A11 as average_salary FROM district ORDER BY A11 DESC LIMIT 10;",
		},
		{
			Question: "What is the total loan amount for each loan status?",
			SQL:      "SELECT status, SUM(amount) as total_loan_amount FROM loan GROUP BY status;",
		},
		{
			Question: "How many gold cards have been issued?",
			SQL:      "SELECT COUNT(card_id) FROM card WHERE type = 'gold';",
		},
		{
			Question: "What is the total number of transactions recorded?",
			SQL:      "SELECT COUNT(trans_id) FROM trans;",
		},
		{
			Question: "What is the average loan amount?",
			SQL:      "SELECT AVG(amount) FROM loan;",
		},
		{
			Question: "List all accounts created in 1997.",
			SQL:      "SELECT account_id, date FROM account WHERE SUBSTR(date, 1, 2) = '97';",
		},
		{
			Question: "What are the different transaction operations available?",
			SQL:      "SELECT DISTINCT operation FROM trans;",
		},
		{
			Question: "How many male vs female clients are there?",
			SQL:      "SELECT gender, COUNT(client_id) FROM client GROUP BY gender;",
		},
		{
			Question: "What are the different payment characterizations (k_symbol) for standing orders?",
			SQL:      "SELECT DISTINCT k_symbol FROM `order`;",
		},
		{
			Question: "Find the 5 largest loans by amount.",
			SQL:      "SELECT loan_id, amount FROM loan ORDER BY amount DESC LIMIT 5;",
		},
		{
			Question: "How many accounts are in district with ID 1?",
			SQL:      "SELECT COUNT(account_id) FROM account WHERE district_id = 1;",
		},
		{
			Question: "What are the different regions listed in the district table?",
			SQL:      "SELECT DISTINCT A3 FROM district;",
		},

		// Moderate queries
		{
			Question: "How many 'gold' credit cards are held by female clients?",
			SQL: `
SELECT COUNT(ca.card_id)
FROM client cl
JOIN disp d ON cl.client_id = d.client_id
JOIN card ca ON d.disp_id = ca.disp_id
WHERE cl.gender = 'F' AND ca.type = 'gold';
`,
		},
		{
			Question: "What is the total transaction amount for accounts located in the 'Prague' district?",
			SQL: `
SELECT SUM(t.amount)
FROM trans t
JOIN account a ON t.account_id = a.account_id
JOIN district d ON a.district_id = d.district_id
WHERE d.A2 = 'Prague';
`,
		},
		{
			Question: "List the client IDs and birth dates for clients who own an account with monthly statement issuance.",
			SQL: `
SELECT c.client_id, c.birth_date
FROM client c
JOIN disp d ON c.client_id = d.client_id
JOIN account a ON d.account_id = a.account_id
WHERE a.frequency = 'POPLATEK MESICNE' AND d.type = 'OWNER';
`,
		},
		{
			Question: "Find all clients who have a loan but do not have a credit card.",
			SQL: `
SELECT DISTINCT c.client_id
FROM client c
JOIN disp d ON c.client_id = d.client_id
WHERE d.account_id IN (SELECT account_id FROM loan)
  AND d.disp_id NOT IN (SELECT disp_id FROM card);
`,
		},
		{
			Question: "What is the average loan amount for male clients living in a region with an unemployment rate in 1996 (A13) higher than 5%?",
			SQL: `
SELECT AVG(l.amount)
FROM loan l
JOIN account a ON l.account_id = a.account_id
JOIN disp d ON a.account_id = d.account_id
JOIN client c ON d.client_id = c.client_id
JOIN district di ON c.district_id = di.district_id
WHERE c.gender = 'M' AND di.A13 > 5.0;
`,
		},
		{
			Question: "Which district has the highest number of bank accounts?",
			SQL: `
SELECT d.A2 as district_name, COUNT(a.account_id) as num_accounts
FROM district d
JOIN account a ON d.district_id = a.district_id
GROUP BY d.A2
ORDER BY num_accounts DESC
LIMIT 1;
`,
		},
		{
			Question: "List clients who are owners of more than one account.",
			SQL: `
SELECT c.client_id
FROM client c
JOIN disp d ON c.client_id = d.client_id
WHERE d.type = 'OWNER'
GROUP BY c.client_id
HAVING COUNT(d.account_id) > 1;
`,
		},
		{
			Question: "What is the total amount of loans given to clients in each region?",
			SQL: `
SELECT di.A3 as region, SUM(l.amount) as total_loan_amount
FROM loan l
JOIN account a ON l.account_id = a.account_id
JOIN district di ON a.district_id = di.district_id
GROUP BY di.A3;
`,
		},
		{
			Question: "Find the number of transactions for each type of credit card.",
			SQL: `
SELECT ca.type, COUNT(t.trans_id) as num_transactions
FROM trans t
JOIN account a ON t.account_id = a.account_id
JOIN disp d ON a.account_id = d.account_id
JOIN card ca ON d.disp_id = ca.disp_id
GROUP BY ca.type;
`,
		},
		{
			Question: "List all standing orders for household payments ('SIPO') that are greater than the average household payment amount.",
			SQL: `
SELECT
  d.A2,
  SUM(t.amount)
FROM district AS d
JOIN account AS a ON d.district_id = a.district_id
JOIN trans AS t ON a.account_id = t.account_id
GROUP BY
  d.A2
`,
		},
		{
			Question: "Show me the total transaction amount for each district.",
			SQL: "\nSELECT * FROM `order`\nWHERE k_symbol = 'SIPO'\n  AND amount > (SELECT AVG(amount) FROM `order` WHERE k_symbol = 'SIPO');\n",
		},

		// Hard queries
		{
			Question: "For each district, find the client who made the single largest transaction and show that transaction amount.",
			SQL: `
WITH RankedTransactions AS (
    SELECT
        d.A2 as district_name,
        c.client_id,
        t.amount,
        RANK() OVER(PARTITION BY d.A2 ORDER BY t.amount DESC) as rn
    FROM trans t
    JOIN account a ON t.account_id = a.account_id
    JOIN disp di ON a.account_id = di.account_id
    JOIN client c ON di.client_id = c.client_id
    JOIN district d ON a.district_id = d.district_id
)
SELECT district_name, client_id, amount
FROM RankedTransactions
WHERE rn = 1;
`,
		},
		{
			Question: "Calculate the month-over-month growth rate of the total withdrawal ('VYDAJ') transaction volume.",
			SQL: `
WITH MonthlyVolume AS (
    SELECT
        STRFTIME('%Y-%m', date) as transaction_month,
        SUM(amount) as total_volume
    FROM trans
    WHERE type = 'VYDAJ'
    GROUP BY transaction_month
)
SELECT
    transaction_month,
    total_volume,
    (total_volume - LAG(total_volume, 1, 0) OVER (ORDER BY transaction_month)) * 100.0 / LAG(total_volume, 1, 0) OVER (ORDER BY transaction_month) as growth_percentage
FROM MonthlyVolume
WHERE LAG(total_volume, 1, 0) OVER (ORDER BY transaction_month) > 0;
`,
		},
		{
			Question: "Find the average number of days between a client's account creation and them taking out their first loan.",
			SQL: `
WITH FirstLoan AS (
    SELECT
        account_id,
        MIN(date) as first_loan_date
    FROM loan
    GROUP BY account_id
)
SELECT
    AVG(JULIANDAY(fl.first_loan_date) - JULIANDAY(a.date)) as avg_days_to_first_loan
FROM account a
JOIN FirstLoan fl ON a.account_id = fl.account_id;
`,
		},
		{
			Question: "List the top 3 districts by the ratio of total loan amount to the number of inhabitants.",
			SQL: `
WITH DistrictLoanSummary AS (
    SELECT
        d.district_id,
        d.A2 as district_name,
        CAST(d.A4 AS INTEGER) as inhabitants,
        SUM(l.amount) as total_loan_amount
    FROM district d
    JOIN account a ON d.district_id = a.district_id
    JOIN loan l ON a.account_id = l.account_id
    GROUP BY d.district_id, d.A2, d.A4
)
SELECT
    district_name,
    total_loan_amount,
    inhabitants,
    (total_loan_amount * 1.0 / inhabitants) as loan_per_capita
FROM DistrictLoanSummary
ORDER BY loan_per_capita DESC
LIMIT 3;
`,
		},
		{
			Question: "Identify clients who have a 'gold' card and have an average transaction balance greater than the overall average transaction balance for all gold card holders.",
			SQL: `
WITH GoldCardHolders AS (
    SELECT d.client_id
    FROM card c
    JOIN disp d ON c.disp_id = d.disp_id
    WHERE c.type = 'gold'
),
OverallGoldAvgBalance AS (
    SELECT AVG(t.balance) as avg_balance
    FROM trans t
    JOIN disp d ON t.account_id = d.account_id
    WHERE d.client_id IN (SELECT client_id FROM GoldCardHolders)
),
ClientAvgBalance AS (
    SELECT
        d.client_id,
        AVG(t.balance) as avg_client_balance
    FROM trans t
    JOIN disp d ON t.account_id = d.account_id
    WHERE d.client_id IN (SELECT client_id FROM GoldCardHolders)
    GROUP BY d.client_id
)
SELECT cab.client_id
FROM ClientAvgBalance cab
CROSS JOIN OverallGoldAvgBalance oab
WHERE cab.avg_client_balance > oab.avg_balance;
`,
		},
		{
			Question: "For each region, what is the percentage of accounts that have taken out a loan?",
			SQL: `
SELECT
    d.A3 as region,
    COUNT(DISTINCT l.account_id) * 100.0 / COUNT(DISTINCT a.account_id) as percentage_with_loan
FROM district d
LEFT JOIN account a ON d.district_id = a.district_id
LEFT JOIN loan l ON a.account_id = l.account_id
GROUP BY d.A3;
`,
		},
		{
			Question: "Find the running total of transaction amounts for each account, ordered by date.",
			SQL: `
SELECT
    account_id,
    date,
    amount,
    SUM(amount) OVER (PARTITION BY account_id ORDER BY date) as running_total
FROM trans
ORDER BY account_id, date;
`,
		},
		{
			Question: "Which clients have had a transaction every single month of 1997?",
			SQL: `
WITH ClientMonthlyTransactions AS (
    SELECT
        d.client_id,
        STRFTIME('%Y-%m', t.date) as transaction_month
    FROM trans t
    JOIN disp d ON t.account_id = d.account_id
    WHERE STRFTIME('%Y', t.date) = '1997'
    GROUP BY d.client_id, transaction_month
)
SELECT client_id
FROM ClientMonthlyTransactions
GROUP BY client_id
HAVING COUNT(transaction_month) = 12;
`,
		},
		{
			Question: "Who is the owner of the account with the largest loan amount?",
			SQL: `
SELECT
  c.client_id
FROM client AS c
JOIN disp AS d ON c.client_id = d.client_id
JOIN loan AS l ON d.account_id = l.account_id
WHERE
  d.type = 'OWNER'
ORDER BY
  l.amount DESC
LIMIT 1;
`,
		},
		{
			Question: "What is the gender of the oldest client who opened his/her account in the 'Prague' district?",
			SQL: `
SELECT
  c.gender
FROM client AS c
JOIN disp AS d ON c.client_id = d.client_id
JOIN account AS a ON d.account_id = a.account_id
JOIN district AS dist ON a.district_id = dist.district_id
WHERE
  dist.A2 = 'Prague'
ORDER BY
  c.birth_date ASC
LIMIT 1;
`,
		},
		{
			Question: "List the account numbers of clients from 'East Bohemia' who have a running loan contract.",
			SQL: `
SELECT
  a.account_id
FROM account AS a
JOIN district AS dist ON a.district_id = dist.district_id
JOIN loan AS l ON a.account_id = l.account_id
WHERE
  dist.A3 = 'East Bohemia' AND l.status IN ('C', 'D');
`,
		},
		{
			Question: "How many female clients opened their accounts in the 'Jesenik' district?",
			SQL: `
SELECT
  COUNT(c.client_id)
FROM client AS c
JOIN disp AS d ON c.client_id = d.client_id
JOIN account AS a ON d.account_id = a.account_id
JOIN district AS dist ON a.district_id = dist.district_id
WHERE
  c.gender = 'F' AND dist.A2 = 'Jesenik';
`,
		},
		{
			Question: "Who placed the order with the id 32423?",
			SQL:      "\nSELECT\n  c.client_id\nFROM client AS c\nJOIN disp AS d ON c.client_id = d.client_id\nJOIN `order` AS o ON d.account_id = o.account_id\nWHERE\n  o.order_id = 32423 AND d.type = 'OWNER';\n",
		},
		{
			Question: "What is the region of the client with the id 3541 from?",
			SQL: `
SELECT
  d.A3
FROM district AS d
JOIN client AS c ON d.district_id = c.district_id
WHERE
  c.client_id = 3541;
`,
		},
		{
			Question: "How much is the average amount in credit card transactions made by account holders in the year 2021?",
			SQL: `
SELECT
  AVG(t.amount)
FROM trans AS t
JOIN disp AS d ON t.account_id = d.account_id
JOIN card AS c ON d.disp_id = c.disp_id
WHERE
  STRFTIME('%Y', t.date) = '2021' AND t.operation = 'VYBER KARTOU';
`,
		},
		{
			Question: "List the account numbers of female clients who are oldest and have the lowest average salary in their district.",
			SQL: `
SELECT
  a.account_id
FROM account AS a
JOIN client AS c ON a.district_id = c.district_id
JOIN district AS d ON a.district_id = d.district_id
JOIN disp ON c.client_id = disp.client_id AND a.account_id = disp.account_id
WHERE
  c.gender = 'F' AND disp.type = 'OWNER'
ORDER BY
  c.birth_date ASC, d.A11 ASC
LIMIT 1;
`,
		},
		{
			Question: "How many accounts in 'North Bohemia' have made a transaction with the partner's bank being 'AB'?",
			SQL: `
SELECT
  COUNT(DISTINCT a.account_id)
FROM account AS a
JOIN district AS d ON a.district_id = d.district_id
JOIN trans AS t ON a.account_id = t.account_id
WHERE
  d.A3 = 'North Bohemia' AND t.bank = 'AB';
`,
		},
	}
}
